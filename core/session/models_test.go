package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{in: "admin", want: RoleAdmin},
		{in: "faculty", want: RoleFaculty},
		{in: "student", want: RoleStudent},
		{in: " Student ", want: RoleStudent},
		{in: "ADMIN", want: RoleAdmin},
		{in: "", wantErr: true},
		{in: "teacher", wantErr: true},
		{in: "admin:owner", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseRole(%q) expected an error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRole(%q) failed: %v", tt.in, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSession_IsAuthenticated(t *testing.T) {
	usr := testUser()
	tests := []struct {
		name string
		sess Session
		want bool
	}{
		{name: "empty", sess: Session{}},
		{name: "token only", sess: Session{Token: "abc"}},
		{name: "user only", sess: Session{User: &usr}},
		{name: "both", sess: Session{User: &usr, Token: "abc"}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sess.IsAuthenticated())
		})
	}
}
