package test

import (
	"math/rand"
	"strconv"
)

const handleLetters = "abcdefghijklmnopqrstuvwxyz0123456789_"

// RandomDiscordID returns a numeric id shaped like a Discord snowflake.
func RandomDiscordID() string {
	return strconv.FormatUint((1<<56)+uint64(rand.Int63n(1<<58)), 10)
}

// RandomUsername returns a lowercase handle of minLen to maxLen characters.
func RandomUsername(minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	buf := make([]byte, minLen+rand.Intn(maxLen-minLen+1))
	for i := range buf {
		buf[i] = handleLetters[rand.Intn(len(handleLetters))]
	}
	return string(buf)
}
