// Package file keeps codelens settings in a TOML file, by default
// ~/.codelens/config.toml, and watches that file so the serve command can
// pick up edits without a restart.
package file
