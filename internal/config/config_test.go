package config

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "complete",
			cfg:     Config{JWTSecret: "secret", MongoURI: "mongodb://localhost:27017"},
			wantErr: false,
		},
		{
			name:    "missing JWT secret",
			cfg:     Config{MongoURI: "mongodb://localhost:27017"},
			wantErr: true,
		},
		{
			name:    "missing Mongo URI",
			cfg:     Config{JWTSecret: "secret"},
			wantErr: true,
		},
		{
			name:    "empty",
			cfg:     Config{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetCollectionPrefix(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"prod", "prod_"},
		{"test", "test_"},
		{"dev", "dev_"},
		{"staging", "dev_"},
	}

	for _, tt := range tests {
		if got := getCollectionPrefix(tt.env); got != tt.want {
			t.Errorf("getCollectionPrefix(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}
