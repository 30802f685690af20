package config

import (
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Mode != ModeConvert {
		t.Errorf("Expected default mode to be 'convert', got '%s'", cfg.Mode)
	}
	if cfg.StartPage != 1 {
		t.Errorf("Expected default start page to be 1, got %d", cfg.StartPage)
	}
	if cfg.MaxFileSize != 100*1024*1024 {
		t.Errorf("Expected default max file size to be 100MB, got %d", cfg.MaxFileSize)
	}
	if cfg.Debug {
		t.Error("Expected debug to default to false")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr string
	}{
		{
			name: "valid convert",
			config: &Config{
				Mode:        ModeConvert,
				Input:       "bom.pdf",
				Output:      "out.pdf",
				StartPage:   1,
				MaxFileSize: 1024,
			},
		},
		{
			name: "valid extract without output",
			config: &Config{
				Mode:        ModeExtract,
				Input:       "bom.pdf",
				StartPage:   1,
				MaxFileSize: 1024,
			},
		},
		{
			name: "valid formats without any paths",
			config: &Config{
				Mode:        ModeFormats,
				StartPage:   1,
				MaxFileSize: 1024,
			},
		},
		{
			name: "valid explicit template",
			config: &Config{
				Mode:         ModeGenerate,
				Input:        "session.json",
				Output:       "out.pdf",
				TemplatePath: "blank.PDF",
				StartPage:    1,
				MaxFileSize:  1024,
			},
		},
		{
			name: "invalid mode",
			config: &Config{
				Mode:        "serve",
				Input:       "bom.pdf",
				Output:      "out.pdf",
				StartPage:   1,
				MaxFileSize: 1024,
			},
			wantErr: "mode must be one of",
		},
		{
			name: "missing input for convert",
			config: &Config{
				Mode:        ModeConvert,
				Output:      "out.pdf",
				StartPage:   1,
				MaxFileSize: 1024,
			},
			wantErr: "input path is required",
		},
		{
			name: "missing output for generate",
			config: &Config{
				Mode:        ModeGenerate,
				Input:       "session.json",
				StartPage:   1,
				MaxFileSize: 1024,
			},
			wantErr: "output path is required",
		},
		{
			name: "start page zero",
			config: &Config{
				Mode:        ModeConvert,
				Input:       "bom.pdf",
				Output:      "out.pdf",
				StartPage:   0,
				MaxFileSize: 1024,
			},
			wantErr: "start page must be positive",
		},
		{
			name: "max file size zero",
			config: &Config{
				Mode:        ModeConvert,
				Input:       "bom.pdf",
				Output:      "out.pdf",
				StartPage:   1,
				MaxFileSize: 0,
			},
			wantErr: "maximum file size must be positive",
		},
		{
			name: "template without pdf extension",
			config: &Config{
				Mode:         ModeConvert,
				Input:        "bom.pdf",
				Output:       "out.pdf",
				TemplatePath: "blank.docx",
				StartPage:    1,
				MaxFileSize:  1024,
			},
			wantErr: "template path must point to a .pdf file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Config.Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Config.Validate() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Config.Validate() error = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfigModeHelpers(t *testing.T) {
	tests := []struct {
		mode         string
		wantConvert  bool
		wantExtract  bool
		wantGenerate bool
		wantFormats  bool
	}{
		{mode: ModeConvert, wantConvert: true},
		{mode: ModeExtract, wantExtract: true},
		{mode: ModeGenerate, wantGenerate: true},
		{mode: ModeFormats, wantFormats: true},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			cfg := &Config{Mode: tt.mode}
			if got := cfg.IsConvertMode(); got != tt.wantConvert {
				t.Errorf("Config.IsConvertMode() = %v, want %v", got, tt.wantConvert)
			}
			if got := cfg.IsExtractMode(); got != tt.wantExtract {
				t.Errorf("Config.IsExtractMode() = %v, want %v", got, tt.wantExtract)
			}
			if got := cfg.IsGenerateMode(); got != tt.wantGenerate {
				t.Errorf("Config.IsGenerateMode() = %v, want %v", got, tt.wantGenerate)
			}
			if got := cfg.IsFormatsMode(); got != tt.wantFormats {
				t.Errorf("Config.IsFormatsMode() = %v, want %v", got, tt.wantFormats)
			}
		})
	}
}

func TestConfigString(t *testing.T) {
	cfg := &Config{
		Mode:         ModeExtract,
		Input:        "/data/bom.pdf",
		Output:       "session.json",
		TemplatePath: "blank.pdf",
		StartPage:    2,
		MaxFileSize:  1024,
		Debug:        true,
	}

	result := cfg.String()

	expectedSubstrings := []string{
		"Mode: extract",
		"Input: /data/bom.pdf",
		"Output: session.json",
		"TemplatePath: blank.pdf",
		"StartPage: 2",
		"MaxFileSize: 1024",
		"Debug: true",
	}
	for _, substr := range expectedSubstrings {
		if !strings.Contains(result, substr) {
			t.Errorf("Config.String() result doesn't contain expected substring: %s\nGot: %s", substr, result)
		}
	}
}
