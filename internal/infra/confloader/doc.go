// Package confloader provides the configuration loading mechanism.
//
// It wraps koanf to load configuration from several sources into a typed
// struct. Sources, lowest priority first:
//
//  1. Default values (WithDefaults)
//  2. YAML configuration file
//  3. Environment variables (PREFIX_SECTION_KEY, with WithEnvPrefix)
//
// Command-line flags are applied by the caller after Load.
package confloader
