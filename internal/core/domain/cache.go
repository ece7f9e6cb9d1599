package domain

import (
	"encoding/json"
	"math/big"

	"go.trai.ch/zerr"
)

// ChangeCacheFormatVersion identifies the persisted change cache schema.
const ChangeCacheFormatVersion = "zkc-changes-1"

// bigIntTag is the wrapper key used to persist arbitrary-precision integers,
// since JSON numbers cannot carry them losslessly.
const bigIntTag = "$bigint"

// BigInt is an arbitrary-precision integer that persists as {"$bigint": "<decimal>"}.
type BigInt struct {
	v *big.Int
}

// NewBigInt wraps v. A nil v is treated as zero.
func NewBigInt(v *big.Int) BigInt {
	if v == nil {
		return BigInt{v: new(big.Int)}
	}
	return BigInt{v: new(big.Int).Set(v)}
}

// Big returns a copy of the wrapped value.
func (b BigInt) Big() *big.Int {
	if b.v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(b.v)
}

// String returns the decimal representation.
func (b BigInt) String() string {
	return b.Big().String()
}

// Equal reports numeric equality. go-cmp picks this method up automatically.
func (b BigInt) Equal(other BigInt) bool {
	return b.Big().Cmp(other.Big()) == 0
}

// MarshalJSON wraps the value in its tag object.
func (b BigInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{bigIntTag: b.String()})
}

// UnmarshalJSON unwraps the tag object.
func (b *BigInt) UnmarshalJSON(data []byte) error {
	var wrapped map[string]string
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return zerr.Wrap(err, "invalid big integer")
	}
	text, ok := wrapped[bigIntTag]
	if !ok {
		return zerr.New("big integer is missing its " + bigIntTag + " tag")
	}
	v, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return zerr.With(zerr.New("invalid big integer"), "value", text)
	}
	b.v = v
	return nil
}

// CompileFlags is the snapshot of everything besides source content that
// influences compiler output.
type CompileFlags struct {
	CompilerVersion string       `json:"compilerVersion"`
	Prime           string       `json:"prime"`
	PrimeModulus    BigInt       `json:"primeModulus"`
	Optimization    int          `json:"optimization"`
	Outputs         []OutputKind `json:"outputs"`
	LinkLibraries   []string     `json:"linkLibraries"`
}

// CacheEntry is the persisted state of one source file. BuildDigest is only
// set for entry files: it covers the entry and its transitive dependencies
// as they were when the entry last compiled or was verified up to date.
type CacheEntry struct {
	ContentHash  string          `json:"contentHash"`
	LastModified int64           `json:"lastModified"`
	CompileFlags CompileFlags    `json:"compileFlags"`
	ParsedData   *ParsedFileData `json:"parsedData"`
	BuildDigest  string          `json:"buildDigest,omitempty"`
}

// ChangeCacheDocument is the persisted change cache, keyed by absolute path.
type ChangeCacheDocument struct {
	FormatVersion string                `json:"formatVersion"`
	Files         map[string]CacheEntry `json:"files"`
}
