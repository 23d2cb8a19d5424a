// Package asm implements a two-pass assembler for a small didactic machine.
//
// Pass 1 (Translator) reads source lines once, building the symbol table,
// the literal table and its pools, and an intermediate code listing. Symbols
// may be used before they are defined; only the ORIGIN and EQU directives
// need a value immediately.
//
// Pass 2 (Emitter) reads the finished tables and intermediate code and
// resolves every reference into a machine listing ordered by address.
package asm
