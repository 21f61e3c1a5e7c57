// Package config provides configuration structures and utilities for scrapetab.
// It defines the listings fetch settings, the relational connection settings,
// and the YAML configuration file that can override their defaults.
package config
