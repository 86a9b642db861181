package hrapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeDetail(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{name: "string", body: `{"detail":"Employee not found"}`, want: "Employee not found"},
		{
			name: "validation list",
			body: `{"detail":[{"loc":["body","email"],"msg":"value is not a valid email address","type":"value_error"},{"loc":["body","date"],"msg":"Attendance date cannot be in the future"}]}`,
			want: "email: value is not a valid email address; date: Attendance date cannot be in the future",
		},
		{name: "list without location", body: `{"detail":[{"msg":"bad"}]}`, want: "bad"},
		{name: "missing", body: `{"error":"nope"}`, want: ""},
		{name: "not json", body: `Internal Server Error`, want: ""},
		{name: "object detail", body: `{"detail":{"x":1}}`, want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DecodeDetail([]byte(tc.body)))
		})
	}
}
