package bitslice

import (
	"bytes"
	"encoding/hex"
	"slices"
	"testing"

	"github.com/codahale/present/internal/keyschedule"
	"github.com/codahale/present/internal/pbox"
	"github.com/codahale/present/internal/sbox"
	"github.com/codahale/present/internal/testdata"
)

func TestLanes(t *testing.T) {
	if got, want := Lanes[uint32](), 32; got != want {
		t.Errorf("Lanes[uint32]() = %d, want = %d", got, want)
	}
	if got, want := Lanes[uint64](), 64; got != want {
		t.Errorf("Lanes[uint64]() = %d, want = %d", got, want)
	}
	if got, want := Size[uint64](), 512; got != want {
		t.Errorf("Size[uint64]() = %d, want = %d", got, want)
	}
}

func testEnsliceLayout[W sbox.Word](t *testing.T) {
	t.Helper()

	drbg := testdata.New("present enslice layout")
	src := drbg.Data(Size[W]())

	var s State[W]
	Enslice(&s, src)

	for i := range Planes {
		for j := range Lanes[W]() {
			got := byte(s[i]>>j) & 1
			want := (src[i/8+j*8] >> (i % 8)) & 1
			if got != want {
				t.Fatalf("plane %d lane %d = %d, want = %d", i, j, got, want)
			}
		}
	}
}

func TestEnsliceLayout(t *testing.T) {
	t.Run("uint32", testEnsliceLayout[uint32])
	t.Run("uint64", testEnsliceLayout[uint64])
}

func testRoundTrip[W sbox.Word](t *testing.T) {
	t.Helper()

	drbg := testdata.New("present transpose")
	for range 20 {
		src := drbg.Data(Size[W]())

		var s State[W]
		Enslice(&s, src)
		dst := make([]byte, len(src))
		Unslice(dst, &s)
		if !bytes.Equal(dst, src) {
			t.Fatalf("Unslice(Enslice(%x)) = %x", src, dst)
		}

		var planes, again State[W]
		for i := range Planes {
			planes[i] = W(0)
			for _, b := range drbg.Data(8) {
				planes[i] = planes[i]<<8 | W(b)
			}
		}
		Unslice(dst, &planes)
		Enslice(&again, dst)
		if again != planes {
			t.Fatalf("Enslice(Unslice(%x)) = %x", planes, again)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	t.Run("uint32", testRoundTrip[uint32])
	t.Run("uint64", testRoundTrip[uint64])
}

// lane extracts block j of s as a scalar state.
func lane[W sbox.Word](s *State[W], j int) [8]byte {
	var out [8]byte
	for i := range Planes {
		out[i/8] |= byte((s[i]>>j)&1) << (i % 8)
	}
	return out
}

func TestLayersMatchScalar(t *testing.T) {
	drbg := testdata.New("present bitsliced layers")
	src := drbg.Data(Size[uint32]())

	var rk [keyschedule.RoundKeySize]byte
	drbg.Fill(rk[:])

	var s State[uint32]
	Enslice(&s, src)
	AddRoundKey(&s, &rk)
	SubLayer(&s)
	pbox.Planes((*[Planes]uint32)(&s))

	for j := range Lanes[uint32]() {
		var want [8]byte
		copy(want[:], src[j*8:])
		for i := range want {
			want[i] ^= rk[i]
		}
		sbox.Layer(&want)
		pbox.Layer(&want)

		if got := lane(&s, j); got != want {
			t.Errorf("lane %d = %x, want = %x", j, got, want)
		}
	}

	pbox.InvPlanes((*[Planes]uint32)(&s))
	InvSubLayer(&s)
	AddRoundKey(&s, &rk)
	dst := make([]byte, len(src))
	Unslice(dst, &s)
	if !bytes.Equal(dst, src) {
		t.Errorf("inverse layers = %x, want = %x", dst, src)
	}
}

func testKnownAnswer[W sbox.Word](t *testing.T) {
	t.Helper()

	tests := []struct {
		key, pt, ct string
	}{
		// PRESENT-80 test vectors from the paper, most significant byte first.
		{"00000000000000000000", "0000000000000000", "5579c1387b228445"},
		{"ffffffffffffffffffff", "0000000000000000", "e72c46c0f5945049"},
		{"00000000000000000000", "ffffffffffffffff", "a112ffc72f68417b"},
		{"ffffffffffffffffffff", "ffffffffffffffff", "3333dcd3213210d2"},
	}

	for _, tt := range tests {
		var key keyschedule.Register
		k, _ := hex.DecodeString(tt.key)
		slices.Reverse(k)
		copy(key[:], k)

		pt, _ := hex.DecodeString(tt.pt)
		slices.Reverse(pt)
		blocks := bytes.Repeat(pt, Lanes[W]())

		EncryptBlocks[W](blocks, &key)

		for j := range Lanes[W]() {
			ct := slices.Clone(blocks[j*8 : j*8+8])
			slices.Reverse(ct)
			if got := hex.EncodeToString(ct); got != tt.ct {
				t.Fatalf("PRESENT(%s, %s) lane %d = %s, want = %s", tt.key, tt.pt, j, got, tt.ct)
			}
		}

		DecryptBlocks[W](blocks, &key)
		if got, want := blocks, bytes.Repeat(pt, Lanes[W]()); !bytes.Equal(got, want) {
			t.Fatalf("DecryptBlocks = %x, want = %x", got, want)
		}
		if !bytes.Equal(key[:], k) {
			t.Fatalf("DecryptBlocks left key = %x, want = %x", key, k)
		}
	}
}

func TestKnownAnswer(t *testing.T) {
	t.Run("uint32", testKnownAnswer[uint32])
	t.Run("uint64", testKnownAnswer[uint64])
}

func TestExpandedMatchesRegister(t *testing.T) {
	drbg := testdata.New("present bitsliced expanded")
	for range 10 {
		var key [keyschedule.Size]byte
		drbg.Fill(key[:])
		src := drbg.Data(Size[uint64]())

		var a, b State[uint64]
		Enslice(&a, src)
		b = a

		reg := keyschedule.Register(key)
		Encrypt(&a, &reg)
		rks := keyschedule.Expand(&key)
		EncryptExpanded(&b, &rks)
		if a != b {
			t.Fatal("EncryptExpanded diverged from Encrypt")
		}

		DecryptExpanded(&b, &rks)
		dst := make([]byte, len(src))
		Unslice(dst, &b)
		if !bytes.Equal(dst, src) {
			t.Fatalf("DecryptExpanded = %x, want = %x", dst, src)
		}
	}
}

func BenchmarkEncrypt32(b *testing.B) {
	var s State[uint32]
	var key keyschedule.Register
	b.SetBytes(int64(Size[uint32]()))
	b.ReportAllocs()
	for b.Loop() {
		k := key
		Encrypt(&s, &k)
	}
}

func BenchmarkEncrypt64(b *testing.B) {
	var s State[uint64]
	var key keyschedule.Register
	b.SetBytes(int64(Size[uint64]()))
	b.ReportAllocs()
	for b.Loop() {
		k := key
		Encrypt(&s, &k)
	}
}

func BenchmarkTranspose(b *testing.B) {
	buf := make([]byte, Size[uint64]())
	var s State[uint64]
	b.SetBytes(int64(len(buf)))
	b.ReportAllocs()
	for b.Loop() {
		Enslice(&s, buf)
		Unslice(buf, &s)
	}
}
