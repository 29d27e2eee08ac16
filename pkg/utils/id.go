package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateRunID returns a short id used to correlate the log lines of one sync pass.
func GenerateRunID() (string, error) {
	return gonanoid.Generate(characters, 8)
}
