// Package config holds the runtime configuration of housepred: where the
// prediction backend lives, how prices are displayed, where the profile
// database is kept and which output format is requested.
//
// Values start from NewConfig, are overridden by the optional YAML file
// (.housepred) and finally by command-line flags.
package config
