package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"

	"trenddrop/internal/models"
)

func TestParseCredential(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   *models.Credential
		wantOK bool
	}{
		{"bearer", "Bearer abc.def", &models.Credential{Scheme: "Bearer", Token: "abc.def"}, true},
		{"lowercase scheme", "bearer xyz", &models.Credential{Scheme: "bearer", Token: "xyz"}, true},
		{"bare token", "anon-key", &models.Credential{Token: "anon-key"}, true},
		{"padded", "  Bearer   tok  ", &models.Credential{Scheme: "Bearer", Token: "tok"}, true},
		{"empty", "", nil, false},
		{"whitespace only", "   ", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCredential(tt.header)
			if ok != tt.wantOK {
				t.Fatalf("ParseCredential(%q) ok = %v, want %v", tt.header, ok, tt.wantOK)
			}
			if tt.want == nil {
				if got != nil {
					t.Errorf("ParseCredential(%q) = %+v, want nil", tt.header, got)
				}
				return
			}
			if *got != *tt.want {
				t.Errorf("ParseCredential(%q) = %+v, want %+v", tt.header, got, tt.want)
			}
		})
	}
}

func TestRequireCredential(t *testing.T) {
	app := fiber.New()
	app.Get("/", RequireCredential, func(c fiber.Ctx) error {
		cred := GetCredential(c)
		if cred == nil {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendString(cred.Token)
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"with credential", "Bearer tok", fiber.StatusOK},
		{"without credential", "", fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if tt.wantStatus == fiber.StatusUnauthorized {
				var body map[string]any
				if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
					t.Fatal(err)
				}
				if body["ok"] != false || body["error"] != "unauthorized" {
					t.Errorf("body = %v", body)
				}
			}
		})
	}
}
