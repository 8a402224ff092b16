package rtpmedia

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitAnnexB_FourByteStartCodes(t *testing.T) {
	data := []byte{0x00, 0x00, 0x00, 0x01, 0x67, 0xAA, 0x00, 0x00, 0x00, 0x01, 0x68, 0xBB}
	nalus := splitAnnexB(data)
	assert.Equal(t, [][]byte{{0x67, 0xAA}, {0x68, 0xBB}}, nalus)
}

func TestSplitAnnexB_ThreeByteStartCodes(t *testing.T) {
	data := []byte{0x00, 0x00, 0x01, 0x65, 0xCC, 0x00, 0x00, 0x01, 0x65, 0xDD}
	nalus := splitAnnexB(data)
	assert.Equal(t, [][]byte{{0x65, 0xCC}, {0x65, 0xDD}}, nalus)
}

func TestSplitAnnexB_MixedStartCodes(t *testing.T) {
	data := []byte{0x00, 0x00, 0x00, 0x01, 0x67, 0x01, 0x00, 0x00, 0x01, 0x68, 0x02}
	nalus := splitAnnexB(data)
	assert.Equal(t, [][]byte{{0x67, 0x01}, {0x68, 0x02}}, nalus)
}

func TestSplitAnnexB_NoStartCodeYieldsNone(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04}
	assert.Nil(t, splitAnnexB(data))
}

func TestSplitAnnexB_EmptyInputYieldsNone(t *testing.T) {
	assert.Nil(t, splitAnnexB(nil))
}

func TestSplitAnnexB_TrailingEmptyNALUSkipped(t *testing.T) {
	data := []byte{0x00, 0x00, 0x01, 0x65, 0xAA, 0x00, 0x00, 0x01}
	nalus := splitAnnexB(data)
	assert.Equal(t, [][]byte{{0x65, 0xAA}}, nalus)
}
