package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSubject(t *testing.T) {
	assert.NotEmpty(t, DefaultSubject())
}

func TestSubjectFrom(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"alice", "alice"},
		{`CORP\alice`, "alice"},
		{`CORP\`, fallbackSubject},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, subjectFrom(tt.in))
		})
	}
}
