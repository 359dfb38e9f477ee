package websocket

import "testing"

func TestClientShouldReceive(t *testing.T) {
	tests := []struct {
		name       string
		clientUser string
		eventUser  string
		want       bool
	}{
		{name: "unscoped event reaches everyone", clientUser: "user-1", eventUser: "", want: true},
		{name: "unscoped event reaches anonymous connections", clientUser: "", eventUser: "", want: true},
		{name: "scoped event reaches its owner", clientUser: "user-1", eventUser: "user-1", want: true},
		{name: "scoped event skips other users", clientUser: "user-2", eventUser: "user-1", want: false},
		{name: "scoped event skips anonymous connections", clientUser: "", eventUser: "user-1", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cl := client{userID: tc.clientUser}
			got := cl.shouldReceive(Event{Code: "NOTE_PROCESSED", UserID: tc.eventUser})
			if got != tc.want {
				t.Fatalf("shouldReceive(client=%q, event=%q) = %v, want %v", tc.clientUser, tc.eventUser, got, tc.want)
			}
		})
	}
}
