//go:build !amd64 && !arm64 && !loong64 && !mips64 && !mips64le && !ppc64 && !ppc64le && !riscv64 && !s390x

package present

// Lanes is the number of blocks the batch and CTR APIs hand to the bitsliced engine at once.
const Lanes = Lanes32

type word = uint32
