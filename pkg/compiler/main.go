// Package compiler converts lexed dignified BASIC into numbered classic
// BASIC lines.
//
// Pipeline: tokens → pass 1 (defines, declares, toggles, FUNC/RET) →
// pass 2 (labels, loops, calls) → pass 3 (includes, joins) → pass 4 (line
// numbers, short variables, backpatch) → pass 5 (classic touches) → lines
//
// Included files stop after pass 3 and are spliced into the including file.
package compiler
