package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	envPrefix = "OVALINFO"
)

// Output formats accepted by output.format.
const (
	OutputFormatText = "text"
	OutputFormatXML  = "xml"
	OutputFormatJSON = "json"

	outputFormatKey = "output.format"
	outputIndentKey = "output.indent"
)

// LoggingConfig defines configs related to logging.
type LoggingConfig struct {
	Debug bool
	JSON  bool
	File  string
}

// ParserConfig defines configs related to reading OVAL documents.
type ParserConfig struct {
	Strict   bool
	Validate bool
}

// OutputConfig defines how parsed sections are written out.
type OutputConfig struct {
	Format string
	Indent int
}

// OvalinfoConfig stores the application configuration. Each subcategory is
// broken up into it's own struct, defined above. When editing any of these
// structs, Manager.addConfigs and Manager.LoadConfig should be updated to set
// and retrieve the configurations as appropriate.
type OvalinfoConfig struct {
	Logging LoggingConfig
	Parser  ParserConfig
	Output  OutputConfig
}

// addConfigs adds the configuration keys and default values that will be
// filled into the OvalinfoConfig struct
func (man Manager) addConfigs() {
	// Logging
	man.addConfigBool("logging.debug", false,
		"Enable debug logging")
	man.addConfigBool("logging.json", false,
		"Log in JSON format")
	man.addConfigString("logging.file", "",
		"Also write logs to this file, rotated when it grows too large")

	// Parser
	man.addConfigBool("parser.strict", false,
		"Fail when the document produced parse warnings")
	man.addConfigBool("parser.validate", true,
		"Reject documents that do not survive an XML round trip")

	// Output
	man.addConfigString(outputFormatKey, OutputFormatText,
		"Output format (text, xml, json)")
	man.addConfigInt(outputIndentKey, 2,
		"Spaces per nesting level for xml and json output")
}

// LoadConfig will load the config variables into a fully initialized
// OvalinfoConfig struct. Values outside of what a key accepts are reported
// as an error.
func (man Manager) LoadConfig() (OvalinfoConfig, error) {
	man.loadConfigFile()

	format, formatErr := man.getConfigOutputFormat()
	indent, indentErr := man.getConfigIndent()
	if err := errors.Join(formatErr, indentErr); err != nil {
		return OvalinfoConfig{}, err
	}

	return OvalinfoConfig{
		Logging: LoggingConfig{
			Debug: man.getConfigBool("logging.debug"),
			JSON:  man.getConfigBool("logging.json"),
			File:  man.getConfigString("logging.file"),
		},
		Parser: ParserConfig{
			Strict:   man.getConfigBool("parser.strict"),
			Validate: man.getConfigBool("parser.validate"),
		},
		Output: OutputConfig{
			Format: format,
			Indent: indent,
		},
	}, nil
}

// IsSet determines whether a given config key has been explicitly set by any
// of the configuration sources. If false, the default value is being used.
func (man Manager) IsSet(key string) bool {
	return man.viper.IsSet(key)
}

// envNameFromConfigKey converts a config key into the corresponding
// environment variable name
func envNameFromConfigKey(key string) string {
	return envPrefix + "_" + strings.ToUpper(strings.Replace(key, ".", "_", -1))
}

// flagNameFromConfigKey converts a config key into the corresponding flag name
func flagNameFromConfigKey(key string) string {
	return strings.Replace(key, ".", "_", -1)
}

// Manager manages the addition and retrieval of config values for ovalinfo
// configs. It's only public API method is LoadConfig, which will return the
// populated OvalinfoConfig struct.
type Manager struct {
	viper    *viper.Viper
	command  *cobra.Command
	defaults map[string]interface{}
}

// NewManager initializes a Manager wrapping the provided cobra
// command. All config flags will be attached to that command (and inherited by
// the subcommands). Typically this should be called just once, with the root
// command.
func NewManager(command *cobra.Command) Manager {
	man := Manager{
		viper:    viper.New(),
		command:  command,
		defaults: map[string]interface{}{},
	}
	man.addConfigs()
	return man
}

// addDefault will check for duplication, then add a default value to the
// defaults map
func (man Manager) addDefault(key string, defVal interface{}) {
	if _, exists := man.defaults[key]; exists {
		panic("Trying to add duplicate config for key " + key)
	}

	man.defaults[key] = defVal
}

func getFlagUsage(key string, usage string) string {
	return fmt.Sprintf("Env: %s\n\t\t%s", envNameFromConfigKey(key), usage)
}

// getInterfaceVal is a helper function used by the getConfig* functions to
// retrieve the config value as interface{}, which will then be cast to the
// appropriate type by the getConfig* function.
func (man Manager) getInterfaceVal(key string) interface{} {
	interfaceVal := man.viper.Get(key)
	if interfaceVal == nil {
		var ok bool
		interfaceVal, ok = man.defaults[key]
		if !ok {
			panic("Tried to look up default value for nonexistent config option: " + key)
		}
	}
	return interfaceVal
}

// addConfigString adds a string config to the config options
func (man Manager) addConfigString(key, defVal, usage string) {
	man.command.PersistentFlags().String(flagNameFromConfigKey(key), defVal, getFlagUsage(key, usage))
	man.viper.BindPFlag(key, man.command.PersistentFlags().Lookup(flagNameFromConfigKey(key))) //nolint:errcheck
	man.viper.BindEnv(key, envNameFromConfigKey(key))                                          //nolint:errcheck

	// Add default
	man.addDefault(key, defVal)
}

// getConfigString retrieves a string from the loaded config
func (man Manager) getConfigString(key string) string {
	interfaceVal := man.getInterfaceVal(key)
	stringVal, err := cast.ToStringE(interfaceVal)
	if err != nil {
		panic("Unable to cast to string for key " + key + ": " + err.Error())
	}

	return stringVal
}

// Custom handling for the output format which can only accept specific values
// for the argument
func (man Manager) getConfigOutputFormat() (string, error) {
	sval := man.getConfigString(outputFormatKey)
	switch sval {
	case OutputFormatText, OutputFormatXML, OutputFormatJSON:
	default:
		return "", fmt.Errorf("%s must be one of %s, %s or %s, got %q", outputFormatKey,
			OutputFormatText, OutputFormatXML, OutputFormatJSON, sval)
	}
	return sval, nil
}

// The indent is a number of spaces, it cannot be negative.
func (man Manager) getConfigIndent() (int, error) {
	ival := man.getConfigInt(outputIndentKey)
	if ival < 0 {
		return 0, fmt.Errorf("%s must not be negative, got %d", outputIndentKey, ival)
	}
	return ival, nil
}

// addConfigInt adds a int config to the config options
func (man Manager) addConfigInt(key string, defVal int, usage string) {
	man.command.PersistentFlags().Int(flagNameFromConfigKey(key), defVal, getFlagUsage(key, usage))
	man.viper.BindPFlag(key, man.command.PersistentFlags().Lookup(flagNameFromConfigKey(key))) //nolint:errcheck
	man.viper.BindEnv(key, envNameFromConfigKey(key))                                          //nolint:errcheck

	// Add default
	man.addDefault(key, defVal)
}

// getConfigInt retrieves a int from the loaded config
func (man Manager) getConfigInt(key string) int {
	interfaceVal := man.getInterfaceVal(key)
	intVal, err := cast.ToIntE(interfaceVal)
	if err != nil {
		panic("Unable to cast to int for key " + key + ": " + err.Error())
	}

	return intVal
}

// addConfigBool adds a bool config to the config options
func (man Manager) addConfigBool(key string, defVal bool, usage string) {
	man.command.PersistentFlags().Bool(flagNameFromConfigKey(key), defVal, getFlagUsage(key, usage))
	man.viper.BindPFlag(key, man.command.PersistentFlags().Lookup(flagNameFromConfigKey(key))) //nolint:errcheck
	man.viper.BindEnv(key, envNameFromConfigKey(key))                                          //nolint:errcheck

	// Add default
	man.addDefault(key, defVal)
}

// getConfigBool retrieves a bool from the loaded config
func (man Manager) getConfigBool(key string) bool {
	interfaceVal := man.getInterfaceVal(key)
	boolVal, err := cast.ToBoolE(interfaceVal)
	if err != nil {
		panic("Unable to cast to bool for key " + key + ": " + err.Error())
	}

	return boolVal
}

// loadConfigFile handles the loading of the config file.
func (man Manager) loadConfigFile() {
	man.viper.SetConfigType("yaml")

	flag := man.command.PersistentFlags().Lookup("config")
	if flag == nil || flag.Value.String() == "" {
		// No config file set, only use configs from env
		// vars/flags/defaults
		return
	}

	man.viper.SetConfigFile(flag.Value.String())
	err := man.viper.ReadInConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config file:", err)
		os.Exit(1)
	}
}

// TestConfig returns a barebones configuration suitable for use in tests.
// Individual tests may want to override some of the values provided.
func TestConfig() OvalinfoConfig {
	return OvalinfoConfig{
		Logging: LoggingConfig{
			Debug: true,
		},
		Parser: ParserConfig{
			Validate: true,
		},
		Output: OutputConfig{
			Format: OutputFormatText,
			Indent: 2,
		},
	}
}
