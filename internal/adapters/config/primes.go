package config

import (
	"math/big"
	"slices"
	"sort"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/field/goldilocks"
	"go.trai.ch/zerr"
	"go.trai.ch/zkc/internal/core/domain"
)

// DefaultPrime is the field used when zkc.yaml names none.
const DefaultPrime = "bn128"

var primes = map[string]func() *big.Int{
	"bn128":      ecc.BN254.ScalarField,
	"bls12381":   ecc.BLS12_381.ScalarField,
	"grumpkin":   ecc.GRUMPKIN.ScalarField,
	"goldilocks": goldilocks.Modulus,
}

// PrimeModulus returns the field modulus of a compiler prime name.
func PrimeModulus(name string) (*big.Int, error) {
	modulus, ok := primes[name]
	if !ok {
		err := zerr.With(zerr.Wrap(domain.ErrUnknownPrime, "unsupported prime"), "prime", name)
		return nil, zerr.With(err, "supported", PrimeNames())
	}
	return modulus(), nil
}

// PrimeNames lists the supported prime names, sorted.
func PrimeNames() []string {
	names := make([]string, 0, len(primes))
	for name := range primes {
		names = append(names, name)
	}
	sort.Strings(names)
	return slices.Clip(names)
}
