// Package config implements the session-wide settings of spec.md §5
// "(added)": the active CPU mask, mode bits, parser dialect, default-rel,
// and force-strict flags, loaded once per process and borrowed read-only
// into every encoding call thereafter (spec.md §5's "owned by an assembly
// session; parser is sole mutator; encoder only reads", lifted onto the
// process boundary since this repository has no persistent session object
// of its own).
//
// Grounded on the teacher's own config-shaped file, architecture's
// registries built once at init() time and never mutated afterwards; here
// the same "build once, hand out a read-only borrow" shape is expressed as
// a TOML-loaded struct instead of a Go literal, since spec.md §"AMBIENT
// STACK" calls for BurntSushi/toml as the configuration library.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/keurnel/x86enc/internal/encoder/cpu"
	"github.com/keurnel/x86enc/internal/encoder/insn"
)

// Config is the process-wide, read-only borrow every encoding call takes
// (spec.md §9's "Process-wide state ... is passed as an explicit
// *config.Config borrow into every encoding call").
type Config struct {
	// ModeBits is 16, 32, or 64.
	ModeBits int `toml:"mode_bits"`

	// Features lists the named CPU features active for this session;
	// resolved into a cpu.Mask once at load time via Mask().
	Features []string `toml:"features"`

	// Dialect selects NASM or GAS syntax for internal/frontend and
	// internal/encoder/lookup.
	Dialect string `toml:"dialect"`

	// DefaultRel mirrors NASM's "default rel" directive: a memory operand
	// with neither a base nor an index register (a pure displacement) is
	// treated as RIP-relative.
	DefaultRel bool `toml:"default_rel"`

	// ForceStrict is copied onto every parsed insn.Insn. The matcher does
	// not read it, so it has no effect on form selection: operands without
	// an explicit size are still accepted.
	ForceStrict bool `toml:"force_strict"`

	mask cpu.Mask // resolved from Features at load time
}

// featureNames maps a config file's feature spelling onto its cpu.Feature.
var featureNames = map[string]cpu.Feature{
	"386":     cpu.Feature386,
	"486":     cpu.Feature486,
	"586":     cpu.Feature586,
	"686":     cpu.Feature686,
	"mmx":     cpu.FeatureMMX,
	"sse":     cpu.FeatureSSE,
	"sse2":    cpu.FeatureSSE2,
	"sse3":    cpu.FeatureSSE3,
	"ssse3":   cpu.FeatureSSSE3,
	"sse4a":   cpu.FeatureSSE4a,
	"sse4.1":  cpu.FeatureSSE41,
	"sse4.2":  cpu.FeatureSSE42,
	"avx":     cpu.FeatureAVX,
	"avx2":    cpu.FeatureAVX2,
	"long":    cpu.FeatureEM64T,
	"priv":    cpu.FeaturePriv,
	"prot":    cpu.FeatureProt,
	"undoc":   cpu.FeatureUndoc,
	"cyrix":   cpu.FeatureCyrix,
	"amd":     cpu.FeatureAMD,
}

// Default returns the session a process runs with when no TOML file is
// given: 64-bit mode, NASM dialect, the "everything up to AVX2 plus long
// mode" mask cpu.Modern386_64 already names.
func Default() *Config {
	return &Config{
		ModeBits: 64,
		Dialect:  "nasm",
		mask:     cpu.Modern386_64,
	}
}

// Load reads and validates a TOML session file at path.
func Load(path string) (*Config, error) {
	c := &Config{}
	if _, err := toml.DecodeFile(path, c); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := c.resolve(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) resolve() error {
	switch c.ModeBits {
	case 0:
		c.ModeBits = 64
	case 16, 32, 64:
	default:
		return fmt.Errorf("config: mode_bits must be 16, 32, or 64, got %d", c.ModeBits)
	}

	if c.Dialect == "" {
		c.Dialect = "nasm"
	}
	switch c.Dialect {
	case "nasm", "gas":
	default:
		return fmt.Errorf("config: dialect must be \"nasm\" or \"gas\", got %q", c.Dialect)
	}

	mask := cpu.Baseline
	for _, name := range c.Features {
		f, ok := featureNames[name]
		if !ok {
			return fmt.Errorf("config: unknown CPU feature %q", name)
		}
		mask = mask.With(f)
	}
	if len(c.Features) == 0 {
		mask = cpu.Modern386_64
	}
	c.mask = mask
	return nil
}

// Mask returns the resolved CPU feature mask.
func (c *Config) Mask() cpu.Mask { return c.mask }

// InsnDialect maps the config's string dialect onto insn.Dialect.
func (c *Config) InsnDialect() insn.Dialect {
	if c.Dialect == "gas" {
		return insn.DialectGAS
	}
	return insn.DialectIntel
}
