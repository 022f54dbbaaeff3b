// Package ciutil reads the environment a test binary runs in: whether it is
// a CI job, and which of several equivalent variables carries a setting.
package ciutil
