// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nodestream

import "fmt"

// Tag is the leading byte of every record in a node stream.
type Tag byte

// Record tags. The numbering is fixed by the format; tags this package
// cannot decode are still named so that errors can identify them.
const (
	TagInvalid                          Tag = 0x00
	TagNamedStartOfReferenceNode        Tag = 0x01
	TagUnnamedStartOfReferenceNode      Tag = 0x02
	TagNamedStartOfStructNode           Tag = 0x03
	TagUnnamedStartOfStructNode         Tag = 0x04
	TagEndOfNode                        Tag = 0x05
	TagStartOfArray                     Tag = 0x06
	TagEndOfArray                       Tag = 0x07
	TagPrimitiveArray                   Tag = 0x08
	TagNamedInternalReference           Tag = 0x09
	TagUnnamedInternalReference         Tag = 0x0A
	TagNamedExternalReferenceByIndex    Tag = 0x0B
	TagUnnamedExternalReferenceByIndex  Tag = 0x0C
	TagNamedExternalReferenceByGuid     Tag = 0x0D
	TagUnnamedExternalReferenceByGuid   Tag = 0x0E
	TagNamedSByte                       Tag = 0x0F
	TagUnnamedSByte                     Tag = 0x10
	TagNamedByte                        Tag = 0x11
	TagUnnamedByte                      Tag = 0x12
	TagNamedShort                       Tag = 0x13
	TagUnnamedShort                     Tag = 0x14
	TagNamedUShort                      Tag = 0x15
	TagUnnamedUShort                    Tag = 0x16
	TagNamedInt                         Tag = 0x17
	TagUnnamedInt                       Tag = 0x18
	TagNamedUInt                        Tag = 0x19
	TagUnnamedUInt                      Tag = 0x1A
	TagNamedLong                        Tag = 0x1B
	TagUnnamedLong                      Tag = 0x1C
	TagNamedULong                       Tag = 0x1D
	TagUnnamedULong                     Tag = 0x1E
	TagNamedFloat                       Tag = 0x1F
	TagUnnamedFloat                     Tag = 0x20
	TagNamedDouble                      Tag = 0x21
	TagUnnamedDouble                    Tag = 0x22
	TagNamedDecimal                     Tag = 0x23
	TagUnnamedDecimal                   Tag = 0x24
	TagNamedChar                        Tag = 0x25
	TagUnnamedChar                      Tag = 0x26
	TagNamedString                      Tag = 0x27
	TagUnnamedString                    Tag = 0x28
	TagNamedGuid                        Tag = 0x29
	TagUnnamedGuid                      Tag = 0x2A
	TagNamedBoolean                     Tag = 0x2B
	TagUnnamedBoolean                   Tag = 0x2C
	TagNamedNull                        Tag = 0x2D
	TagUnnamedNull                      Tag = 0x2E
	TagTypeName                         Tag = 0x2F
	TagTypeID                           Tag = 0x30
	TagEndOfStream                      Tag = 0x31
	TagNamedExternalReferenceByString   Tag = 0x32
	TagUnnamedExternalReferenceByString Tag = 0x33
)

var tagNames = [...]string{
	"Invalid",
	"NamedStartOfReferenceNode",
	"UnnamedStartOfReferenceNode",
	"NamedStartOfStructNode",
	"UnnamedStartOfStructNode",
	"EndOfNode",
	"StartOfArray",
	"EndOfArray",
	"PrimitiveArray",
	"NamedInternalReference",
	"UnnamedInternalReference",
	"NamedExternalReferenceByIndex",
	"UnnamedExternalReferenceByIndex",
	"NamedExternalReferenceByGuid",
	"UnnamedExternalReferenceByGuid",
	"NamedSByte",
	"UnnamedSByte",
	"NamedByte",
	"UnnamedByte",
	"NamedShort",
	"UnnamedShort",
	"NamedUShort",
	"UnnamedUShort",
	"NamedInt",
	"UnnamedInt",
	"NamedUInt",
	"UnnamedUInt",
	"NamedLong",
	"UnnamedLong",
	"NamedULong",
	"UnnamedULong",
	"NamedFloat",
	"UnnamedFloat",
	"NamedDouble",
	"UnnamedDouble",
	"NamedDecimal",
	"UnnamedDecimal",
	"NamedChar",
	"UnnamedChar",
	"NamedString",
	"UnnamedString",
	"NamedGuid",
	"UnnamedGuid",
	"NamedBoolean",
	"UnnamedBoolean",
	"NamedNull",
	"UnnamedNull",
	"TypeName",
	"TypeID",
	"EndOfStream",
	"NamedExternalReferenceByString",
	"UnnamedExternalReferenceByString",
}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return fmt.Sprintf("Tag(0x%02X)", byte(t))
}
