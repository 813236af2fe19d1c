// Package ir provides the value model and compiled declaration types for caseset.
//
// This package contains type definitions only. All other internal packages
// import ir; ir imports nothing internal.
//
// Key design constraints:
//   - NO float types anywhere - backing values and attributes are ints or strings
//   - Equality is strict: IRString("1") never equals IRInt(1)
//   - Compare is a total order so every sort is deterministic
//   - All JSON tags use snake_case
package ir
