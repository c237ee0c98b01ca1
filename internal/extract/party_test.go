package extract

import "testing"

func TestSenderName(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		want  string
		found bool
	}{
		{
			name:  "received from with phone",
			body:  "You have received 1,600 RWF from Samuel Carter (250788123456) on your account.",
			want:  "Samuel Carter",
			found: true,
		},
		{
			name:  "by company on date",
			body:  "A transaction of 40000 RWF by DIRECT PAYMENT LTD on your account was completed",
			want:  "DIRECT PAYMENT LTD",
			found: true,
		},
		{
			name:  "bare from with paren",
			body:  "transfer from Alice Brown (250788111222) confirmed",
			want:  "Alice Brown",
			found: true,
		},
		{
			name:  "no sender",
			body:  "Your payment of 600 RWF to Airtime has been completed",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := SenderName(tt.body)
			if found != tt.found {
				t.Fatalf("SenderName() found = %v, want %v", found, tt.found)
			}
			if found && got != tt.want {
				t.Errorf("SenderName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReceiverName(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		want  string
		found bool
	}{
		{
			name:  "payment to name with code",
			body:  "Your payment of 1,000 RWF to Linda Green 14166 has been completed.",
			want:  "Linda Green",
			found: true,
		},
		{
			name:  "transferred to with paren phone",
			body:  "10000 RWF transferred to Jane Smith (250790777777) from your account",
			want:  "Jane Smith",
			found: true,
		},
		{
			name:  "transferred to with code",
			body:  "700 RWF transferred to John Doe 12345 at 2024-02-01",
			want:  "John Doe",
			found: true,
		},
		{
			name:  "no receiver",
			body:  "You have received 1,600 RWF from Samuel Carter (250788123456).",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ReceiverName(tt.body)
			if found != tt.found {
				t.Fatalf("ReceiverName() found = %v, want %v", found, tt.found)
			}
			if found && got != tt.want {
				t.Errorf("ReceiverName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAgentName(t *testing.T) {
	body := "You have via agent: Agent Sophia (250790777777), withdrawn 20000 RWF from your account"

	got, found := AgentName(body)
	if !found {
		t.Fatal("AgentName() found = false, want true")
	}
	if got != "Agent Sophia" {
		t.Errorf("AgentName() = %q, want %q", got, "Agent Sophia")
	}

	if _, found := AgentName("You have received 1,600 RWF from Samuel Carter (250788123456)."); found {
		t.Error("AgentName() found = true for body without agent")
	}
}

func TestPhones(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		extract func(string) (string, bool)
		want    string
		found   bool
	}{
		{
			name:    "sender phone",
			body:    "received 1,600 RWF from Samuel Carter (250788123456) on your account",
			extract: SenderPhone,
			want:    "250788123456",
			found:   true,
		},
		{
			name:    "receiver phone",
			body:    "transferred to Jane Smith (250790777777) from your account",
			extract: ReceiverPhone,
			want:    "250790777777",
			found:   true,
		},
		{
			name:    "masked receiver phone",
			body:    "sent to Robert Brown (250***888) completed",
			extract: ReceiverPhone,
			want:    "250***888",
			found:   true,
		},
		{
			name:    "agent phone",
			body:    "via agent: Agent Sophia (250790777777), withdrawn 20000 RWF",
			extract: AgentPhone,
			want:    "250790777777",
			found:   true,
		},
		{
			name:    "sender phone absent",
			body:    "payment of 600 RWF to Airtime completed",
			extract: SenderPhone,
			found:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := tt.extract(tt.body)
			if found != tt.found {
				t.Fatalf("found = %v, want %v", found, tt.found)
			}
			if found && got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
