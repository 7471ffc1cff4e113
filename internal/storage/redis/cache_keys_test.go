package redis

import "testing"

func TestKeys(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "session", got: SessionKey("abc"), want: "session:abc"},
		{name: "quiz", got: QuizKey(12), want: "quiz:user:12"},
		{name: "rate limit", got: RateLimitKey("10.0.0.1"), want: "ratelimit:client:10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}
