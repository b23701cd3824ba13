package github

import "testing"

func TestParseRepository(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{
			name:      "valid repository",
			input:     "wasilva/payments-api",
			wantOwner: "wasilva",
			wantRepo:  "payments-api",
		},
		{
			name:    "missing slash",
			input:   "payments-api",
			wantErr: true,
		},
		{
			name:    "empty owner",
			input:   "/payments-api",
			wantErr: true,
		},
		{
			name:    "empty name",
			input:   "wasilva/",
			wantErr: true,
		},
		{
			name:    "too many segments",
			input:   "host/wasilva/payments-api",
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, err := parseRepository(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseRepository(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if owner != tt.wantOwner || repo != tt.wantRepo {
				t.Errorf("parseRepository(%q) = %q, %q, want %q, %q",
					tt.input, owner, repo, tt.wantOwner, tt.wantRepo)
			}
		})
	}
}

func TestAPIBaseURL(t *testing.T) {
	tests := []struct {
		name   string
		domain string
		want   string
	}{
		{
			name:   "bare domain",
			domain: "github.example.com",
			want:   "https://github.example.com/api/v3/",
		},
		{
			name:   "domain with scheme",
			domain: "https://github.example.com",
			want:   "https://github.example.com/api/v3/",
		},
		{
			name:   "trailing slash",
			domain: "github.example.com/",
			want:   "https://github.example.com/api/v3/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := apiBaseURL(tt.domain); got != tt.want {
				t.Errorf("apiBaseURL(%q) = %q, want %q", tt.domain, got, tt.want)
			}
		})
	}
}
