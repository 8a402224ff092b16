package rtpmedia

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestH265Packetizer_SatisfiesPacketizerInterface(t *testing.T) {
	var _ Packetizer = NewH265Packetizer(96)
}

func TestH265Packetizer_PacketizeNotImplemented(t *testing.T) {
	p := NewH265Packetizer(96)
	packets, err := p.Packetize([]byte{0x01}, 3000)
	assert.Nil(t, packets)
	assert.True(t, errors.Is(err, ErrNotImplemented))
}

func TestMJPEGPacketizer_SatisfiesPacketizerInterface(t *testing.T) {
	var _ Packetizer = NewMJPEGPacketizer()
}

func TestMJPEGPacketizer_StaticPayloadType26(t *testing.T) {
	p := NewMJPEGPacketizer()
	assert.Equal(t, uint8(26), p.PayloadType())
}

func TestMJPEGPacketizer_PacketizeNotImplemented(t *testing.T) {
	p := NewMJPEGPacketizer()
	packets, err := p.Packetize([]byte{0xFF, 0xD8}, 3000)
	assert.Nil(t, packets)
	assert.True(t, errors.Is(err, ErrNotImplemented))
}
