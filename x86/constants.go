package x86

// REX Prefix Constants
const (
	REX   = 0x40 // REX prefix base
	REX_W = 0x08 // REX.W - 64-bit operand size
	REX_R = 0x04 // REX.R - Extension of ModRM reg field
	REX_X = 0x02 // REX.X - Extension of SIB index field
	REX_B = 0x01 // REX.B - Extension of ModRM r/m, SIB base, or opcode reg field
)

// ModRM Mode Constants
const (
	MOD_INDIRECT        = 0x00 // [reg] or [disp32]
	MOD_INDIRECT_DISP8  = 0x01 // [reg + disp8]
	MOD_INDIRECT_DISP32 = 0x02 // [reg + disp32]
	MOD_REGISTER        = 0x03 // reg
)

// Mandatory prefixes and their VEX/EVEX pp encodings
const (
	PREFIX_NONE = 0x00
	PREFIX_66   = 0x66
	PREFIX_F3   = 0xF3
	PREFIX_F2   = 0xF2

	PP_NONE = 0x0
	PP_66   = 0x1
	PP_F3   = 0x2
	PP_F2   = 0x3
)

// VEX/EVEX opcode maps
const (
	MAP_0F   = 0x1
	MAP_0F38 = 0x2
	MAP_0F3A = 0x3
)

// VEX.L / EVEX.L'L vector lengths
const (
	VL128 = 0x0
	VL256 = 0x1
	VL512 = 0x2
)

// VEX/EVEX escape bytes
const (
	VEX2 = 0xC5
	VEX3 = 0xC4
	EVEX = 0x62
)

// Primary Opcodes
const (
	OP_ADD_RM_R        = 0x01 // ADD r/m, r
	OP_XOR_RM_R        = 0x31 // XOR r/m, r
	OP_PUSH_R          = 0x50 // PUSH r64 (+ reg)
	OP_POP_R           = 0x58 // POP r64 (+ reg)
	OP_JNZ_REL8        = 0x75 // JNZ rel8
	OP_GROUP1_RM_IMM32 = 0x81 // Group 1 operations with imm32
	OP_GROUP1_RM_IMM8  = 0x83 // Group 1 operations with imm8
	OP_MOV_RM_R        = 0x89 // MOV r/m, r
	OP_MOV_R_RM        = 0x8B // MOV r, r/m
	OP_LEA             = 0x8D // LEA r, m
	OP_NOP             = 0x90 // NOP
	OP_MOV_R_IMM       = 0xB8 // MOV r, imm64 (+ reg)
	OP_RET             = 0xC3 // RET
	OP_MOV_RM_IMM      = 0xC7 // MOV r/m, imm32
	OP_GROUP2_RM_CL    = 0xD3 // Group 2 shift operations by CL
	OP_GROUP5          = 0xFF // INC/DEC/CALL/JMP/PUSH r/m
	OP_ESCAPE          = 0x0F // two-byte opcode escape
)

// Two-byte (0F xx) opcodes
const (
	OP2_JNZ_REL32 = 0x85 // JNZ rel32
	OP2_SHLD_CL   = 0xA5 // SHLD r/m, r, CL
	OP2_IMUL_R_RM = 0xAF // IMUL r, r/m
	OP2_POPCNT    = 0xB8 // POPCNT r, r/m (F3)
)

// Group opcode extensions (ModRM.reg)
const (
	EXT_AND = 4
	EXT_SUB = 5
	EXT_SHL = 4
	EXT_DEC = 1
)
