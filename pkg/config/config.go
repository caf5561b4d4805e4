// Package config gathers the conversion settings. Later sources override
// earlier ones: built-in defaults, badig.yaml, BADIG_* environment variables,
// command line flags and finally the remtags found in the source file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"badig/pkg/compiler"
	"badig/pkg/source"
)

// DefaultFile is looked up next to the executable and in the working
// directory.
const DefaultFile = "badig.yaml"

type Settings struct {
	SystemID string `yaml:"system_id" validate:"required"`
	Input    string `yaml:"source_file"`
	Output   string `yaml:"destin_file"`

	TabLength     int    `yaml:"tab_length" validate:"min=0,max=16"`
	LineStart     int    `yaml:"line_start" validate:"min=0,max=65529"`
	LineStep      int    `yaml:"line_step" validate:"min=1,max=65529"`
	RemHeader     bool   `yaml:"rem_header"`
	StripSpaces   bool   `yaml:"strip_spaces"`
	CapitaliseAll bool   `yaml:"capitalize_all"`
	Translate     bool   `yaml:"translate"`
	ConvertPrint  string `yaml:"convert_print" validate:"omitempty,oneof=? p"`
	StripThenGoto string `yaml:"strip_then_goto" validate:"omitempty,oneof=t g"`

	PrintReport  bool `yaml:"print_report"`
	LabelReport  bool `yaml:"label_report"`
	LineReport   bool `yaml:"line_report"`
	VarReport    bool `yaml:"var_report"`
	LexerReport  bool `yaml:"lexer_report"`
	ParserReport bool `yaml:"parser_report"`

	Verbosity int `yaml:"verbose_level" validate:"min=0,max=5"`

	Tokenizer Tokenizer `yaml:"tokenizer"`
}

// Tokenizer configures the hand-off of the saved program to an external
// binary tokenizer.
type Tokenizer struct {
	Command  string   `yaml:"command"`
	Args     []string `yaml:"args,omitempty"`
	Tokenize bool     `yaml:"tokenize"`
	List     int      `yaml:"list" validate:"min=0,max=32"`
	DelASCII bool     `yaml:"del_ascii"`
	Verbose  int      `yaml:"verbose" validate:"min=0,max=5"`
}

// Defaults returns the settings used when nothing else is configured.
func Defaults() Settings {
	return Settings{
		SystemID:  "msx",
		TabLength: 4,
		LineStart: 10,
		LineStep:  10,
		RemHeader: true,
		Verbosity: 3,
		Tokenizer: Tokenizer{Verbose: 3},
	}
}

// Load reads path over the defaults and applies the environment. A missing
// file is not an error.
func Load(path string) (Settings, error) {
	s := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return s, fmt.Errorf("read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &s); err != nil {
				return s, fmt.Errorf("problem with %s: %w", path, err)
			}
		}
	}
	if err := s.applyEnv(); err != nil {
		return s, err
	}
	return s, nil
}

// Save writes the settings as YAML.
func (s Settings) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (s *Settings) applyEnv() error {
	s.SystemID = getEnv("BADIG_SYSTEM_ID", s.SystemID)
	s.ConvertPrint = getEnv("BADIG_CONVERT_PRINT", s.ConvertPrint)
	s.StripThenGoto = getEnv("BADIG_STRIP_THEN_GOTO", s.StripThenGoto)
	s.Tokenizer.Command = getEnv("BADIG_TOKENIZER", s.Tokenizer.Command)

	ints := map[string]*int{
		"BADIG_TAB_LENGTH":    &s.TabLength,
		"BADIG_LINE_START":    &s.LineStart,
		"BADIG_LINE_STEP":     &s.LineStep,
		"BADIG_VERBOSE_LEVEL": &s.Verbosity,
	}
	for key, p := range ints {
		v, err := strconv.Atoi(getEnv(key, strconv.Itoa(*p)))
		if err != nil {
			return fmt.Errorf("%s must be a number: %w", key, err)
		}
		*p = v
	}

	bools := map[string]*bool{
		"BADIG_REM_HEADER":     &s.RemHeader,
		"BADIG_STRIP_SPACES":   &s.StripSpaces,
		"BADIG_CAPITALIZE_ALL": &s.CapitaliseAll,
		"BADIG_TRANSLATE":      &s.Translate,
	}
	for key, p := range bools {
		v, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(*p)))
		if err != nil {
			return fmt.Errorf("%s must be true or false: %w", key, err)
		}
		*p = v
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Validate checks the ranges and choices of every field.
func (s *Settings) Validate() error {
	s.ConvertPrint = strings.ToLower(s.ConvertPrint)
	s.StripThenGoto = strings.ToLower(s.StripThenGoto)

	err := validator.New().Struct(s)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: invalid value %v (%s %s)", fe.Namespace(), fe.Value(), fe.Tag(), fe.Param()))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// Options maps the settings onto the compiler switches.
func (s Settings) Options() compiler.Options {
	return compiler.Options{
		LineStart:     s.LineStart,
		LineStep:      s.LineStep,
		RemHeader:     s.RemHeader,
		StripSpaces:   s.StripSpaces,
		CapitaliseAll: s.CapitaliseAll,
		Translate:     s.Translate,
		LabelReport:   s.LabelReport,
		ConvertPrint:  s.ConvertPrint,
		StripThenGoto: s.StripThenGoto,
	}
}

// Encoding is the text encoding for loading and saving. Translated programs
// are read as UTF-8 so the look-alike characters survive.
func (s Settings) Encoding() string {
	if s.Translate {
		return source.UTF8
	}
	return source.Latin1
}
