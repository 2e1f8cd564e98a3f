package rand

import (
	"math/rand"
	"sync"
	"time"
)

// String returns a random string
func String(n int) string {
	return string(randBytes(n))
}

// LetterString returns a random string picked in the [0-9]|[a-z] range
func LetterString(n int) string {
	return string(randLetterBytes(n))
}

var (
	onceSource sync.Once
	rgen       *rand.Rand
	randMutex  sync.Mutex
)

func seed() {
	src := rand.NewSource(time.Now().UnixNano())
	rgen = rand.New(src) // #nosec
}

func randBytes(n int) []byte {
	onceSource.Do(seed)
	buf := make([]byte, n)
	randMutex.Lock()
	_, _ = rgen.Read(buf)
	randMutex.Unlock()
	return buf
}

func randLetterBytes(n int) []byte {
	const letters = "abcdefghijklmnopqrstuvwxyz0123456789"
	onceSource.Do(seed)
	buf := make([]byte, n)
	randMutex.Lock()
	for i := range buf {
		buf[i] = letters[rgen.Intn(len(letters))]
	}
	randMutex.Unlock()
	return buf
}
