package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/arena-booking/internal/access"
	"github.com/example/arena-booking/internal/persistence"
)

type userDirectoryStub struct {
	users map[string]User
	err   error
}

func (u *userDirectoryStub) GetUser(ctx context.Context, id string) (User, error) {
	if u.err != nil {
		return User{}, u.err
	}
	user, ok := u.users[id]
	if !ok {
		return User{}, persistence.ErrNotFound
	}
	return user, nil
}

func (u *userDirectoryStub) GetUserByEmail(ctx context.Context, email string) (User, error) {
	if u.err != nil {
		return User{}, u.err
	}
	for _, user := range u.users {
		if user.Email == email {
			return user, nil
		}
	}
	return User{}, persistence.ErrNotFound
}

func plainVerifier(hashedPassword, password string) error {
	if hashedPassword != "stored:"+password {
		return ErrInvalidCredentials
	}
	return nil
}

func newAuthEnv() (*AuthService, *userDirectoryStub) {
	users := &userDirectoryStub{users: map[string]User{
		"user-1": {
			ID:           "user-1",
			Email:        "admin@arena.test",
			PasswordHash: "stored:correct horse",
			Role:         access.RoleAdmin,
			LocationID:   "loc-1",
			Active:       true,
		},
	}}
	service := NewAuthService(users, plainVerifier, []byte("test-secret"), time.Hour, func() time.Time { return testReference })
	return service, users
}

func TestAuthenticate(t *testing.T) {
	service, _ := newAuthEnv()

	t.Run("success issues token", func(t *testing.T) {
		result, err := service.Authenticate(context.Background(), AuthenticateParams{
			Email:    "  Admin@Arena.Test ",
			Password: "correct horse",
		})
		if err != nil {
			t.Fatalf("Authenticate returned %v", err)
		}
		if result.Token == "" {
			t.Fatal("expected a signed token")
		}
		if !result.ExpiresAt.Equal(testReference.Add(time.Hour)) {
			t.Fatalf("ExpiresAt = %v", result.ExpiresAt)
		}
		if result.User.ID != "user-1" {
			t.Fatalf("User.ID = %q", result.User.ID)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Authenticate(context.Background(), AuthenticateParams{
			Email:    "admin@arena.test",
			Password: "wrong",
		})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown email maps to invalid credentials", func(t *testing.T) {
		_, err := service.Authenticate(context.Background(), AuthenticateParams{
			Email:    "nobody@arena.test",
			Password: "correct horse",
		})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("empty credentials", func(t *testing.T) {
		_, err := service.Authenticate(context.Background(), AuthenticateParams{})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("err = %v, want ErrInvalidCredentials", err)
		}
	})
}

func TestValidateToken(t *testing.T) {
	service, users := newAuthEnv()

	result, err := service.Authenticate(context.Background(), AuthenticateParams{
		Email:    "admin@arena.test",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Authenticate returned %v", err)
	}

	t.Run("round trip resolves principal", func(t *testing.T) {
		principal, err := service.ValidateToken(context.Background(), result.Token)
		if err != nil {
			t.Fatalf("ValidateToken returned %v", err)
		}
		if principal.UserID != "user-1" || principal.Role != access.RoleAdmin || principal.LocationID != "loc-1" {
			t.Fatalf("principal = %+v", principal)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		if _, err := service.ValidateToken(context.Background(), "not.a.token"); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("err = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("wrong signing key", func(t *testing.T) {
		other := NewAuthService(users, plainVerifier, []byte("another-secret"), time.Hour, func() time.Time { return testReference })
		if _, err := other.ValidateToken(context.Background(), result.Token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("err = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		later := NewAuthService(users, plainVerifier, []byte("test-secret"), time.Hour, func() time.Time { return testReference.Add(2 * time.Hour) })
		if _, err := later.ValidateToken(context.Background(), result.Token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("err = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("deactivated user loses access", func(t *testing.T) {
		user := users.users["user-1"]
		user.Active = false
		users.users["user-1"] = user
		defer func() {
			user.Active = true
			users.users["user-1"] = user
		}()

		if _, err := service.ValidateToken(context.Background(), result.Token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("err = %v, want ErrInvalidToken", err)
		}
	})
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := CreatePasswordHash("arena-secret-1", DefaultArgon2idParams)
	if err != nil {
		t.Fatalf("CreatePasswordHash returned %v", err)
	}
	if err := VerifyPassword(hash, "arena-secret-1"); err != nil {
		t.Fatalf("VerifyPassword rejected the original password: %v", err)
	}
	if err := VerifyPassword(hash, "arena-secret-2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}
