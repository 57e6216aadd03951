package decoder

// Stream typecodes, one octet each. This is the protocol's closed set; any
// other byte at a position expecting a typecode is ErrUnknownTypecode.
//
// TC_BLOCKDATALONG (0x7A) is deliberately absent: the long block-data form
// it introduces is explicitly not required by this decoder (see the
// BlockData component notes), so a stream that emits it where a typecode is
// expected is treated the same as any other value outside the closed set.
const (
	tcNull           uint8 = 0x70
	tcReference      uint8 = 0x71
	tcClassDesc      uint8 = 0x72
	tcObject         uint8 = 0x73
	tcString         uint8 = 0x74
	tcArray          uint8 = 0x75
	tcClass          uint8 = 0x76
	tcBlockData      uint8 = 0x77
	tcEndBlockData   uint8 = 0x78
	tcReset          uint8 = 0x79
	tcException      uint8 = 0x7B
	tcLongString     uint8 = 0x7C
	tcProxyClassDesc uint8 = 0x7D
	tcEnum           uint8 = 0x7E
)

// classDescContext is the restricted typecode set allowed wherever the
// grammar expects a class reference: TC_OBJECT's class, TC_ARRAY's class,
// and a class descriptor's super pointer.
var classDescContext = map[uint8]bool{
	tcClassDesc:      true,
	tcProxyClassDesc: true,
	tcNull:           true,
	tcReference:      true,
}

// unsupportedTypecodes are recognised members of the protocol that this
// decoder deliberately does not implement; encountering one stops the
// decode with ErrUnsupportedTypecode rather than guessing at behaviour.
var unsupportedTypecodes = map[uint8]string{
	tcEnum:           "TC_ENUM",
	tcClass:          "TC_CLASS",
	tcReset:          "TC_RESET",
	tcException:      "TC_EXCEPTION",
	tcProxyClassDesc: "TC_PROXYCLASSDESC",
}

// endBlock is the sentinel value content() returns for TC_ENDBLOCKDATA.
type endBlock struct{}
