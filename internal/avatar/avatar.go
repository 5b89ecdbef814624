// AngelaMos | 2026
// avatar.go

package avatar

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
)

type Category string

const (
	Male    Category = "male"
	Female  Category = "female"
	Neutral Category = "andy"
)

// indexRange is the inclusive span of image numbers for a category.
type indexRange struct {
	lo, hi int
}

var ranges = map[Category]indexRange{
	Male:    {3, 10},
	Female:  {11, 20},
	Neutral: {1, 2},
}

var (
	//go:embed names/male.txt
	maleNames []byte
	//go:embed names/female.txt
	femaleNames []byte
)

// Picker assigns avatar image paths from a first name. The zero value is not
// usable; call New.
type Picker struct {
	male   map[string]struct{}
	female map[string]struct{}

	mu  sync.Mutex
	rnd *rand.Rand
}

func New() *Picker {
	//nolint:gosec // G404: avatar choice is cosmetic
	return NewWithRand(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

// NewWithRand uses rnd for index selection. Tests pass a seeded source.
func NewWithRand(rnd *rand.Rand) *Picker {
	return &Picker{
		male:   loadNames(maleNames),
		female: loadNames(femaleNames),
		rnd:    rnd,
	}
}

func loadNames(data []byte) map[string]struct{} {
	set := make(map[string]struct{})
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		set[strings.ToLower(line)] = struct{}{}
	}
	return set
}

// Infer maps a first name to a category. Names on both lists or on neither
// are neutral.
func (p *Picker) Infer(firstName string) Category {
	name := strings.ToLower(strings.TrimSpace(firstName))
	if i := strings.IndexAny(name, " -"); i > 0 {
		name = name[:i]
	}

	_, isMale := p.male[name]
	_, isFemale := p.female[name]

	switch {
	case isMale && !isFemale:
		return Male
	case isFemale && !isMale:
		return Female
	default:
		return Neutral
	}
}

// ForName returns "/avatar/{category}/{index}". The category is fixed for a
// name; the index is random within the category's range.
func (p *Picker) ForName(firstName string) string {
	c := p.Infer(firstName)
	r := ranges[c]

	p.mu.Lock()
	n := r.lo + p.rnd.IntN(r.hi-r.lo+1)
	p.mu.Unlock()

	return Path(c, n)
}

func Path(c Category, index int) string {
	return fmt.Sprintf("/avatar/%s/%d", c, index)
}

// Range reports the inclusive index bounds for c.
func Range(c Category) (lo, hi int) {
	r := ranges[c]
	return r.lo, r.hi
}
