package script

// Op is a single Script opcode value.
type Op byte

// Push opcodes. 0x01..0x4b push that many literal bytes; the rest are
// named per spec.md §4.5.
const (
	OP_0         Op = 0x00
	OP_PUSHDATA1 Op = 0x4c
	OP_PUSHDATA2 Op = 0x4d
	OP_PUSHDATA4 Op = 0x4e
	OP_1NEGATE   Op = 0x4f
	OP_RESERVED  Op = 0x50
	OP_1         Op = 0x51
	OP_2         Op = 0x52
	OP_3         Op = 0x53
	OP_4         Op = 0x54
	OP_5         Op = 0x55
	OP_6         Op = 0x56
	OP_7         Op = 0x57
	OP_8         Op = 0x58
	OP_9         Op = 0x59
	OP_10        Op = 0x5a
	OP_11        Op = 0x5b
	OP_12        Op = 0x5c
	OP_13        Op = 0x5d
	OP_14        Op = 0x5e
	OP_15        Op = 0x5f
	OP_16        Op = 0x60
)

// Control flow.
const (
	OP_NOP      Op = 0x61
	OP_VER      Op = 0x62 // reserved
	OP_IF       Op = 0x63
	OP_NOTIF    Op = 0x64
	OP_VERIF    Op = 0x65 // reserved
	OP_VERNOTIF Op = 0x66 // reserved
	OP_ELSE     Op = 0x67
	OP_ENDIF    Op = 0x68
	OP_VERIFY   Op = 0x69
	OP_RETURN   Op = 0x6a
)

// Stack manipulation.
const (
	OP_TOALTSTACK   Op = 0x6b
	OP_FROMALTSTACK Op = 0x6c
	OP_2DROP        Op = 0x6d
	OP_2DUP         Op = 0x6e
	OP_3DUP         Op = 0x6f
	OP_2OVER        Op = 0x70
	OP_2ROT         Op = 0x71
	OP_2SWAP        Op = 0x72
	OP_IFDUP        Op = 0x73
	OP_DEPTH        Op = 0x74
	OP_DROP         Op = 0x75
	OP_DUP          Op = 0x76
	OP_NIP          Op = 0x77
	OP_OVER         Op = 0x78
	OP_PICK         Op = 0x79
	OP_ROLL         Op = 0x7a
	OP_ROT          Op = 0x7b
	OP_SWAP         Op = 0x7c
	OP_TUCK         Op = 0x7d
)

// Splice and bitwise opcodes. The byte-manipulation ones are disabled
// per spec.md §4.5; they parse, but executing one in a live branch
// fails the script.
const (
	OP_CAT        Op = 0x7e
	OP_SUBSTR     Op = 0x7f
	OP_LEFT       Op = 0x80
	OP_RIGHT      Op = 0x81
	OP_SIZE       Op = 0x82
	OP_INVERT     Op = 0x83
	OP_AND        Op = 0x84
	OP_OR         Op = 0x85
	OP_XOR        Op = 0x86
	OP_EQUAL      Op = 0x87
	OP_EQUALVERIFY Op = 0x88
	OP_RESERVED1  Op = 0x89
	OP_RESERVED2  Op = 0x8a
)

// Numeric opcodes. 2MUL/2DIV/MUL/DIV/MOD/LSHIFT/RSHIFT are disabled
// per spec.md §4.5.
const (
	OP_1ADD               Op = 0x8b
	OP_1SUB               Op = 0x8c
	OP_2MUL               Op = 0x8d
	OP_2DIV               Op = 0x8e
	OP_NEGATE             Op = 0x8f
	OP_ABS                Op = 0x90
	OP_NOT                Op = 0x91
	OP_0NOTEQUAL          Op = 0x92
	OP_ADD                Op = 0x93
	OP_SUB                Op = 0x94
	OP_MUL                Op = 0x95
	OP_DIV                Op = 0x96
	OP_MOD                Op = 0x97
	OP_LSHIFT             Op = 0x98
	OP_RSHIFT             Op = 0x99
	OP_BOOLAND            Op = 0x9a
	OP_BOOLOR             Op = 0x9b
	OP_NUMEQUAL           Op = 0x9c
	OP_NUMEQUALVERIFY     Op = 0x9d
	OP_NUMNOTEQUAL        Op = 0x9e
	OP_LESSTHAN           Op = 0x9f
	OP_GREATERTHAN        Op = 0xa0
	OP_LESSTHANOREQUAL    Op = 0xa1
	OP_GREATERTHANOREQUAL Op = 0xa2
	OP_MIN                Op = 0xa3
	OP_MAX                Op = 0xa4
	OP_WITHIN             Op = 0xa5
)

// Crypto and signature-checking opcodes.
const (
	OP_RIPEMD160           Op = 0xa6
	OP_SHA1                Op = 0xa7
	OP_SHA256              Op = 0xa8
	OP_HASH160             Op = 0xa9
	OP_HASH256             Op = 0xaa
	OP_CODESEPARATOR       Op = 0xab
	OP_CHECKSIG            Op = 0xac
	OP_CHECKSIGVERIFY      Op = 0xad
	OP_CHECKMULTISIG       Op = 0xae
	OP_CHECKMULTISIGVERIFY Op = 0xaf
)

// Reserved NOPs, one of which (OP_NOP2) is redefined by BIP-65 as
// OP_CHECKLOCKTIMEVERIFY once the activation height is reached.
const (
	OP_NOP1               Op = 0xb0
	OP_CHECKLOCKTIMEVERIFY Op = 0xb1
	OP_NOP2               Op = 0xb1
	OP_CHECKSEQUENCEVERIFY Op = 0xb2
	OP_NOP3               Op = 0xb2
	OP_NOP4               Op = 0xb3
	OP_NOP5               Op = 0xb4
	OP_NOP6               Op = 0xb5
	OP_NOP7               Op = 0xb6
	OP_NOP8               Op = 0xb7
	OP_NOP9               Op = 0xb8
	OP_NOP10              Op = 0xb9
)

// disabledOpcodes execute-to-fail unconditionally when reached in a
// live branch (spec.md §4.5): the byte-string splice/bitwise ops and
// the wide-numeric ops beyond +/-1/negate/abs.
var disabledOpcodes = map[Op]bool{
	OP_CAT: true, OP_SUBSTR: true, OP_LEFT: true, OP_RIGHT: true,
	OP_INVERT: true, OP_AND: true, OP_OR: true, OP_XOR: true,
	OP_2MUL: true, OP_2DIV: true, OP_MUL: true, OP_DIV: true,
	OP_MOD: true, OP_LSHIFT: true, OP_RSHIFT: true,
}

// reservedOpcodes fail unconditionally when executed, same as disabled
// opcodes, but represent opcodes the original protocol reserved for
// future use rather than deliberately removed functionality.
var reservedOpcodes = map[Op]bool{
	OP_RESERVED: true, OP_VER: true, OP_VERIF: true, OP_VERNOTIF: true,
	OP_RESERVED1: true, OP_RESERVED2: true,
}

func (op Op) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return "OP_UNKNOWN"
}

var opNames = map[Op]string{
	OP_0: "OP_0", OP_PUSHDATA1: "OP_PUSHDATA1", OP_PUSHDATA2: "OP_PUSHDATA2",
	OP_PUSHDATA4: "OP_PUSHDATA4", OP_1NEGATE: "OP_1NEGATE", OP_RESERVED: "OP_RESERVED",
	OP_1: "OP_1", OP_2: "OP_2", OP_3: "OP_3", OP_4: "OP_4", OP_5: "OP_5",
	OP_6: "OP_6", OP_7: "OP_7", OP_8: "OP_8", OP_9: "OP_9", OP_10: "OP_10",
	OP_11: "OP_11", OP_12: "OP_12", OP_13: "OP_13", OP_14: "OP_14", OP_15: "OP_15", OP_16: "OP_16",
	OP_NOP: "OP_NOP", OP_VER: "OP_VER", OP_IF: "OP_IF", OP_NOTIF: "OP_NOTIF",
	OP_VERIF: "OP_VERIF", OP_VERNOTIF: "OP_VERNOTIF", OP_ELSE: "OP_ELSE",
	OP_ENDIF: "OP_ENDIF", OP_VERIFY: "OP_VERIFY", OP_RETURN: "OP_RETURN",
	OP_TOALTSTACK: "OP_TOALTSTACK", OP_FROMALTSTACK: "OP_FROMALTSTACK",
	OP_2DROP: "OP_2DROP", OP_2DUP: "OP_2DUP", OP_3DUP: "OP_3DUP",
	OP_2OVER: "OP_2OVER", OP_2ROT: "OP_2ROT", OP_2SWAP: "OP_2SWAP",
	OP_IFDUP: "OP_IFDUP", OP_DEPTH: "OP_DEPTH", OP_DROP: "OP_DROP",
	OP_DUP: "OP_DUP", OP_NIP: "OP_NIP", OP_OVER: "OP_OVER", OP_PICK: "OP_PICK",
	OP_ROLL: "OP_ROLL", OP_ROT: "OP_ROT", OP_SWAP: "OP_SWAP", OP_TUCK: "OP_TUCK",
	OP_CAT: "OP_CAT", OP_SUBSTR: "OP_SUBSTR", OP_LEFT: "OP_LEFT", OP_RIGHT: "OP_RIGHT",
	OP_SIZE: "OP_SIZE", OP_INVERT: "OP_INVERT", OP_AND: "OP_AND", OP_OR: "OP_OR",
	OP_XOR: "OP_XOR", OP_EQUAL: "OP_EQUAL", OP_EQUALVERIFY: "OP_EQUALVERIFY",
	OP_RESERVED1: "OP_RESERVED1", OP_RESERVED2: "OP_RESERVED2",
	OP_1ADD: "OP_1ADD", OP_1SUB: "OP_1SUB", OP_2MUL: "OP_2MUL", OP_2DIV: "OP_2DIV",
	OP_NEGATE: "OP_NEGATE", OP_ABS: "OP_ABS", OP_NOT: "OP_NOT", OP_0NOTEQUAL: "OP_0NOTEQUAL",
	OP_ADD: "OP_ADD", OP_SUB: "OP_SUB", OP_MUL: "OP_MUL", OP_DIV: "OP_DIV", OP_MOD: "OP_MOD",
	OP_LSHIFT: "OP_LSHIFT", OP_RSHIFT: "OP_RSHIFT", OP_BOOLAND: "OP_BOOLAND", OP_BOOLOR: "OP_BOOLOR",
	OP_NUMEQUAL: "OP_NUMEQUAL", OP_NUMEQUALVERIFY: "OP_NUMEQUALVERIFY", OP_NUMNOTEQUAL: "OP_NUMNOTEQUAL",
	OP_LESSTHAN: "OP_LESSTHAN", OP_GREATERTHAN: "OP_GREATERTHAN",
	OP_LESSTHANOREQUAL: "OP_LESSTHANOREQUAL", OP_GREATERTHANOREQUAL: "OP_GREATERTHANOREQUAL",
	OP_MIN: "OP_MIN", OP_MAX: "OP_MAX", OP_WITHIN: "OP_WITHIN",
	OP_RIPEMD160: "OP_RIPEMD160", OP_SHA1: "OP_SHA1", OP_SHA256: "OP_SHA256",
	OP_HASH160: "OP_HASH160", OP_HASH256: "OP_HASH256", OP_CODESEPARATOR: "OP_CODESEPARATOR",
	OP_CHECKSIG: "OP_CHECKSIG", OP_CHECKSIGVERIFY: "OP_CHECKSIGVERIFY",
	OP_CHECKMULTISIG: "OP_CHECKMULTISIG", OP_CHECKMULTISIGVERIFY: "OP_CHECKMULTISIGVERIFY",
	OP_NOP1: "OP_NOP1", OP_CHECKLOCKTIMEVERIFY: "OP_CHECKLOCKTIMEVERIFY",
	OP_CHECKSEQUENCEVERIFY: "OP_CHECKSEQUENCEVERIFY", OP_NOP4: "OP_NOP4", OP_NOP5: "OP_NOP5",
	OP_NOP6: "OP_NOP6", OP_NOP7: "OP_NOP7", OP_NOP8: "OP_NOP8", OP_NOP9: "OP_NOP9", OP_NOP10: "OP_NOP10",
}
