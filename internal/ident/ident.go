package ident

import (
	"math/rand/v2"

	"github.com/google/uuid"
)

const (
	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	DefaultCodeLength = 8
)

type Generator interface {
	NewID() string
	TrackingCode(length int) string
}

type Random struct{}

func (Random) NewID() string { return NewID() }

func (Random) TrackingCode(length int) string { return TrackingCode(length) }

// NewID returns an opaque primary key.
func NewID() string {
	return uuid.NewString()
}

// TrackingCode returns length symbols drawn uniformly from alphabet.
// Uniqueness is the caller's job.
func TrackingCode(length int) string {
	if length <= 0 {
		length = DefaultCodeLength
	}

	res := make([]byte, length)
	for i := range res {
		res[i] = alphabet[rand.N(len(alphabet))]
	}
	return string(res)
}
