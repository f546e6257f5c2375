package canon

import (
	"bytes"
	"context"
	stderrors "errors"
	"testing"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/zhenghaven/SimpleUtf/errors"
)

// Module exporting one page of memory and a bump allocator:
// cabi_realloc(old_ptr, old_size, align, new_size) returns the current heap
// pointer (starting at 1024) and advances it by new_size.
var allocWasm = []byte{
	0x00, 0x61, 0x73, 0x6d, // magic
	0x01, 0x00, 0x00, 0x00, // version
	0x01, 0x09, 0x01, 0x60, 0x04, 0x7f, 0x7f, 0x7f, 0x7f, 0x01, 0x7f, // type section: (i32 i32 i32 i32) -> i32
	0x03, 0x02, 0x01, 0x00, // func section: 1 func of type 0
	0x05, 0x03, 0x01, 0x00, 0x01, // memory section: 1 page min, no max
	0x06, 0x07, 0x01, 0x7f, 0x01, 0x41, 0x80, 0x08, 0x0b, // global section: mut i32 = 1024
	0x07, 0x19, 0x02, // export section: 2 exports
	0x06, 0x6d, 0x65, 0x6d, 0x6f, 0x72, 0x79, 0x02, 0x00, // "memory"
	0x0c, 0x63, 0x61, 0x62, 0x69, 0x5f, 0x72, 0x65, 0x61, 0x6c, 0x6c, 0x6f, 0x63, 0x00, 0x00, // "cabi_realloc"
	0x0a, 0x0d, 0x01, 0x0b, 0x00, // code section: 1 body, no locals
	0x23, 0x00, // global.get 0
	0x23, 0x00, // global.get 0
	0x20, 0x03, // local.get 3
	0x6a,       // i32.add
	0x24, 0x00, // global.set 0
	0x0b, // end
}

// Same shape, but cabi_realloc traps.
var trapWasm = []byte{
	0x00, 0x61, 0x73, 0x6d, // magic
	0x01, 0x00, 0x00, 0x00, // version
	0x01, 0x09, 0x01, 0x60, 0x04, 0x7f, 0x7f, 0x7f, 0x7f, 0x01, 0x7f, // type section: (i32 i32 i32 i32) -> i32
	0x03, 0x02, 0x01, 0x00, // func section: 1 func of type 0
	0x05, 0x03, 0x01, 0x00, 0x01, // memory section: 1 page min, no max
	0x07, 0x19, 0x02, // export section: 2 exports
	0x06, 0x6d, 0x65, 0x6d, 0x6f, 0x72, 0x79, 0x02, 0x00, // "memory"
	0x0c, 0x63, 0x61, 0x62, 0x69, 0x5f, 0x72, 0x65, 0x61, 0x6c, 0x6c, 0x6f, 0x63, 0x00, 0x00, // "cabi_realloc"
	0x0a, 0x05, 0x01, 0x03, 0x00, // code section: 1 body, no locals
	0x00, // unreachable
	0x0b, // end
}

const heapBase = 1024

func newGuest(t *testing.T, rt wazero.Runtime, name string, bin []byte, enc StringEncoding) Options {
	t.Helper()
	ctx := context.Background()

	mod, err := rt.InstantiateWithConfig(ctx, bin, wazero.NewModuleConfig().WithName(name))
	if err != nil {
		t.Fatalf("instantiate %s: %v", name, err)
	}
	t.Cleanup(func() { mod.Close(ctx) })

	return Options{
		Memory:   mod.ExportedMemory("memory"),
		Realloc:  mod.ExportedFunction("cabi_realloc"),
		Encoding: enc,
	}
}

func newRuntime(t *testing.T) wazero.Runtime {
	t.Helper()
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	t.Cleanup(func() { rt.Close(ctx) })
	return rt
}

func readMem(t *testing.T, mem api.Memory, ptr, n uint32) []byte {
	t.Helper()
	data, ok := mem.Read(ptr, n)
	if !ok {
		t.Fatalf("read %d bytes at %d out of range", n, ptr)
	}
	return data
}

func TestLowerLift_UTF8(t *testing.T) {
	ctx := context.Background()
	opts := newGuest(t, newRuntime(t), "guest", allocWasm, StringEncodingUTF8)

	ptr, n, err := LowerString(ctx, opts, "héllo")
	if err != nil {
		t.Fatalf("LowerString failed: %v", err)
	}
	if ptr != heapBase || n != 6 {
		t.Errorf("LowerString = (%d, %d), want (%d, 6)", ptr, n, heapBase)
	}
	if got := readMem(t, opts.Memory, ptr, n); string(got) != "héllo" {
		t.Errorf("memory = %q, want %q", got, "héllo")
	}

	s, err := LiftString(ctx, opts, ptr, n)
	if err != nil {
		t.Fatalf("LiftString failed: %v", err)
	}
	if s != "héllo" {
		t.Errorf("LiftString = %q, want %q", s, "héllo")
	}
}

func TestLowerLift_UTF16(t *testing.T) {
	ctx := context.Background()
	opts := newGuest(t, newRuntime(t), "guest", allocWasm, StringEncodingUTF16)

	ptr, n, err := LowerString(ctx, opts, "😂 ✅")
	if err != nil {
		t.Fatalf("LowerString failed: %v", err)
	}
	if n != 4 {
		t.Errorf("length = %d code units, want 4", n)
	}
	want := []byte{0x3D, 0xD8, 0x02, 0xDE, 0x20, 0x00, 0x05, 0x27}
	if got := readMem(t, opts.Memory, ptr, 2*n); !bytes.Equal(got, want) {
		t.Errorf("memory = % X, want % X", got, want)
	}

	// the allocator was asked for exactly 8 bytes
	next, _, err := LowerString(ctx, opts, "")
	if err != nil {
		t.Fatalf("LowerString empty failed: %v", err)
	}
	if next != ptr+8 {
		t.Errorf("next allocation at %d, want %d", next, ptr+8)
	}

	s, err := LiftString(ctx, opts, ptr, n)
	if err != nil {
		t.Fatalf("LiftString failed: %v", err)
	}
	if s != "😂 ✅" {
		t.Errorf("LiftString = %q", s)
	}
}

func TestLiftString_Malformed(t *testing.T) {
	ctx := context.Background()
	rt := newRuntime(t)

	u16 := newGuest(t, rt, "u16", allocWasm, StringEncodingUTF16)
	// "a" followed by a lone low surrogate
	u16.Memory.Write(64, []byte{'a', 0x00, 0x02, 0xDE})
	_, err := LiftString(ctx, u16, 64, 2)
	if !stderrors.Is(err, errors.ErrLoneOrMisorderedSurrogate) {
		t.Fatalf("expected lone surrogate error, got %v", err)
	}
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Offset != 1 {
		t.Errorf("expected offset 1, got %+v", e)
	}

	u8 := newGuest(t, rt, "u8", allocWasm, StringEncodingUTF8)
	u8.Memory.Write(64, []byte{0xC0, 0x80})
	_, err = LiftString(ctx, u8, 64, 2)
	if !stderrors.Is(err, errors.ErrOverlongEncoding) {
		t.Errorf("expected overlong error, got %v", err)
	}
}

func TestLiftString_OutOfBounds(t *testing.T) {
	ctx := context.Background()
	rt := newRuntime(t)

	u8 := newGuest(t, rt, "u8", allocWasm, StringEncodingUTF8)
	size := u8.Memory.Size()
	_, err := LiftString(ctx, u8, size-4, 10)
	if errors.KindOf(err) != errors.KindOutOfBounds {
		t.Errorf("expected out of bounds, got %v", err)
	}

	u16 := newGuest(t, rt, "u16", allocWasm, StringEncodingUTF16)
	_, err = LiftString(ctx, u16, 0, 0x80000000)
	if errors.KindOf(err) != errors.KindOutOfBounds {
		t.Errorf("expected out of bounds for overflowing length, got %v", err)
	}
}

func TestLowerString_InvalidInputAllocatesNothing(t *testing.T) {
	ctx := context.Background()
	opts := newGuest(t, newRuntime(t), "guest", allocWasm, StringEncodingUTF16)

	_, _, err := LowerString(ctx, opts, "ok\xff")
	if !stderrors.Is(err, errors.ErrInvalidLeadByte) {
		t.Fatalf("expected invalid lead byte, got %v", err)
	}

	ptr, _, err := LowerString(ctx, opts, "ok")
	if err != nil {
		t.Fatalf("LowerString failed: %v", err)
	}
	if ptr != heapBase {
		t.Errorf("ptr = %d, want %d", ptr, heapBase)
	}
}

func TestLowerString_ReallocTrap(t *testing.T) {
	opts := newGuest(t, newRuntime(t), "guest", trapWasm, StringEncodingUTF8)

	_, _, err := LowerString(context.Background(), opts, "boom")
	if errors.KindOf(err) != errors.KindAllocation {
		t.Fatalf("expected allocation error, got %v", err)
	}
	if stderrors.Unwrap(err) == nil {
		t.Error("allocation error should carry the trap as its cause")
	}
}

func TestOptionsChecks(t *testing.T) {
	ctx := context.Background()

	_, err := LiftString(ctx, Options{Encoding: StringEncodingUTF8}, 0, 0)
	if !stderrors.Is(err, ErrNilMemory) {
		t.Errorf("expected ErrNilMemory, got %v", err)
	}

	opts := newGuest(t, newRuntime(t), "guest", allocWasm, StringEncodingUTF8)
	opts.Realloc = nil
	_, _, err = LowerString(ctx, opts, "x")
	if !stderrors.Is(err, ErrNilRealloc) {
		t.Errorf("expected ErrNilRealloc, got %v", err)
	}

	opts.Encoding = StringEncoding(0x02)
	_, err = LiftString(ctx, opts, 0, 0)
	if errors.KindOf(err) != errors.KindUnsupported {
		t.Errorf("expected unsupported encoding, got %v", err)
	}
}

func TestTranscodeString(t *testing.T) {
	ctx := context.Background()
	rt := newRuntime(t)
	src := newGuest(t, rt, "src", allocWasm, StringEncodingUTF8)
	dst := newGuest(t, rt, "dst", allocWasm, StringEncodingUTF16)

	text := "测试程序 😆"
	ptr, n, err := LowerString(ctx, src, text)
	if err != nil {
		t.Fatalf("LowerString failed: %v", err)
	}

	ptr16, n16, err := TranscodeString(ctx, src, dst, ptr, n)
	if err != nil {
		t.Fatalf("TranscodeString failed: %v", err)
	}
	if n16 != 7 {
		t.Errorf("length = %d code units, want 7", n16)
	}

	s, err := LiftString(ctx, dst, ptr16, n16)
	if err != nil {
		t.Fatalf("LiftString failed: %v", err)
	}
	if s != text {
		t.Errorf("round trip = %q, want %q", s, text)
	}

	// and back again
	ptr8, n8, err := TranscodeString(ctx, dst, src, ptr16, n16)
	if err != nil {
		t.Fatalf("TranscodeString back failed: %v", err)
	}
	if got := readMem(t, src.Memory, ptr8, n8); string(got) != text {
		t.Errorf("memory = %q, want %q", got, text)
	}
}

func TestLogger_ReportsFailures(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	prev := Logger()
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(prev) })

	ctx := context.Background()
	opts := newGuest(t, newRuntime(t), "guest", allocWasm, StringEncodingUTF8)
	opts.Memory.Write(0, []byte{0xFF})

	if _, err := LiftString(ctx, opts, 0, 1); err == nil {
		t.Fatal("expected error")
	}
	entries := logs.FilterMessage("string lift failed").All()
	if len(entries) != 1 {
		t.Fatalf("got %d log entries, want 1", len(entries))
	}
	if enc := entries[0].ContextMap()["encoding"]; enc != "utf-8" {
		t.Errorf("encoding field = %v, want utf-8", enc)
	}
}
