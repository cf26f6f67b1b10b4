// Package config resolves settings from a tracked config file and its
// optional local override.
//
// # Files
//
// The tracked file (e.g. app.cfg) is version controlled and must exist.
// Its local sibling (app_local.cfg) is optional and holds secrets and
// machine-specific values. See [LocalPathFor].
//
// # Resolution Order (highest priority first)
//
//   - Call-time override passed to [Resolver.GetOption] via [Set]
//   - Local file
//   - Tracked (global) file
//   - Default value passed by the caller
//
// An override created with Set(nil), Set(0) or Set(false) still wins;
// only [Unset] means "no override".
//
// # Loading
//
// [BuildPair] loads both files. A missing tracked file is an error. A
// missing local file logs a warning and resolution continues with the
// tracked file alone. A local file that exists but fails to parse is an
// error, never silently ignored.
//
// # Comparing
//
// [Diff] and [CompareFiles] report sections and keys present in one file
// but not the other, which helps keep a local file in step with the
// tracked template.
package config
