//go:build rp2040

package main

const timerBase = 0x40054000
