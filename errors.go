package main

import (
	"errors"
	"fmt"
)

var (
	errSpace     = errors.New("heap space exhausted")
	errNull      = errors.New("null pointer")
	errTag       = errors.New("wrong node kind")
	errBug       = errors.New("internal bug")
	errSyntax    = errors.New("syntax error")
	errUnderflow = errors.New("environment underflow")
)

type nullError Pointer

func (p nullError) Error() string {
	return fmt.Sprintf("null pointer @%v#%v", p.slot, p.gen)
}
func (p nullError) Unwrap() error { return errNull }

type tagError struct {
	want, got kind
	at        Pointer
}

func (te tagError) Error() string {
	return fmt.Sprintf("wrong node kind @%v#%v: want %v, have %v",
		te.at.slot, te.at.gen, te.want, te.got)
}
func (te tagError) Unwrap() error { return errTag }

type syntaxError string

func (mess syntaxError) Error() string { return "syntax error: " + string(mess) }
func (mess syntaxError) Unwrap() error { return errSyntax }

type bugError string

func (mess bugError) Error() string { return "internal bug: " + string(mess) }
func (mess bugError) Unwrap() error { return errBug }
