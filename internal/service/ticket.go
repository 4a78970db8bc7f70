package service

import (
	"crypto/rand"
)

const (
	ticketPrefix  = "PR-"
	ticketLength  = 5
	ticketCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// newTicketCode returns a short dryclean receipt token like "PR-4K9ZQ".
// Uniqueness is not enforced: 36^5 combinations keep the collision odds
// negligible at small-business sale volumes.
func newTicketCode() string {
	buf := make([]byte, ticketLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the OS entropy source is broken.
		panic(err)
	}
	for i, b := range buf {
		buf[i] = ticketCharset[int(b)%len(ticketCharset)]
	}
	return ticketPrefix + string(buf)
}
