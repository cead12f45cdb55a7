package p2p

import (
	"bytes"
	"testing"
)

func TestWriteReadEnvelopeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte("hello block")
	if err := WriteEnvelope(&buf, MainNetMagic, "block", payload); err != nil {
		t.Fatalf("WriteEnvelope: %v", err)
	}

	env, rerr := ReadEnvelope(&buf, MainNetMagic)
	if rerr != nil {
		t.Fatalf("ReadEnvelope: %v", rerr)
	}
	if env.Command != "block" {
		t.Fatalf("command = %q, want block", env.Command)
	}
	if !bytes.Equal(env.Payload, payload) {
		t.Fatalf("payload = %q, want %q", env.Payload, payload)
	}
}

func TestReadEnvelopeWrongMagicDisconnects(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteEnvelope(&buf, 0xdeadbeef, "ping", nil); err != nil {
		t.Fatalf("WriteEnvelope: %v", err)
	}
	_, rerr := ReadEnvelope(&buf, MainNetMagic)
	if rerr == nil || !rerr.Disconnect {
		t.Fatalf("expected a disconnect-worthy magic mismatch, got %v", rerr)
	}
}

func TestReadEnvelopeChecksumMismatchDropsNotDisconnects(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteEnvelope(&buf, MainNetMagic, "tx", []byte("payload")); err != nil {
		t.Fatalf("WriteEnvelope: %v", err)
	}
	raw := buf.Bytes()
	raw[20] ^= 0xff // corrupt the checksum field

	_, rerr := ReadEnvelope(bytes.NewReader(raw), MainNetMagic)
	if rerr == nil {
		t.Fatalf("expected checksum mismatch error")
	}
	if rerr.Disconnect {
		t.Fatalf("checksum mismatch should drop the message, not disconnect")
	}
}

func TestReadEnvelopeOversizePayloadDisconnects(t *testing.T) {
	var hdr [HeaderSize]byte
	hdr[0], hdr[1], hdr[2], hdr[3] = 0xf9, 0xbe, 0xb4, 0xd9
	copy(hdr[4:], "block")
	hdr[16], hdr[17], hdr[18], hdr[19] = 0xff, 0xff, 0xff, 0xff // declares ~4GiB payload

	_, rerr := ReadEnvelope(bytes.NewReader(hdr[:]), MainNetMagic)
	if rerr == nil || !rerr.Disconnect {
		t.Fatalf("expected an oversize declared-length disconnect, got %v", rerr)
	}
}
