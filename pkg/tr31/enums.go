package tr31

// Version identifies one of the four TR-31 format versions, each of
// which fixes a cipher, block size, binding method, and MAC length
// (spec.md §3.1).
type Version byte

const (
	VersionA Version = 'A' // TDES, Variant Binding, CBC-MAC
	VersionB Version = 'B' // TDES, Derivation Binding, TDES-CMAC
	VersionC Version = 'C' // TDES, Variant Binding, CBC-MAC
	VersionD Version = 'D' // AES, Derivation Binding, AES-CMAC
)

func (v Version) valid() bool {
	switch v {
	case VersionA, VersionB, VersionC, VersionD:
		return true
	default:
		return false
	}
}

// cipherBlockSize returns the block size in bytes of the cipher fixed
// by this version: 8 for TDES (A/B/C), 16 for AES (D).
func (v Version) cipherBlockSize() int {
	if v == VersionD {
		return 16
	}

	return 8
}

// authenticatorHexLen returns the authenticator length in ASCII hex
// characters fixed by this version (spec.md §3.1).
func (v Version) authenticatorHexLen() int {
	switch v {
	case VersionA, VersionC:
		return 8 // 4-byte CBC-MAC
	case VersionB:
		return 16 // 8-byte TDES-CMAC
	case VersionD:
		return 32 // 16-byte AES-CMAC
	default:
		return 0
	}
}

// bindingMethod reports whether this version uses variant or
// derivation binding.
func (v Version) bindingMethod() string {
	switch v {
	case VersionA, VersionC:
		return "variant"
	case VersionB, VersionD:
		return "derivation"
	default:
		return ""
	}
}

// Algorithm is the single-character key algorithm field (header byte 7).
type Algorithm byte

const (
	AlgorithmAES  Algorithm = 'A'
	AlgorithmDES  Algorithm = 'D'
	AlgorithmEC   Algorithm = 'E'
	AlgorithmHMAC Algorithm = 'H'
	AlgorithmRSA  Algorithm = 'R'
	AlgorithmDSA  Algorithm = 'S'
	AlgorithmTDES Algorithm = 'T'
)

func (a Algorithm) valid() bool {
	switch a {
	case AlgorithmAES, AlgorithmDES, AlgorithmEC, AlgorithmHMAC, AlgorithmRSA, AlgorithmDSA, AlgorithmTDES:
		return true
	default:
		return false
	}
}

// ModeOfUse is the single-character mode-of-use field (header byte 8).
type ModeOfUse byte

const (
	ModeOfUseEncryptDecrypt ModeOfUse = 'B'
	ModeOfUseMAC            ModeOfUse = 'C'
	ModeOfUseDecrypt        ModeOfUse = 'D'
	ModeOfUseEncrypt        ModeOfUse = 'E'
	ModeOfUseMACGenerate    ModeOfUse = 'G'
	ModeOfUseAny            ModeOfUse = 'N'
	ModeOfUseSignature      ModeOfUse = 'S'
	ModeOfUseMACVerify      ModeOfUse = 'V'
	ModeOfUseDerive         ModeOfUse = 'X'
	ModeOfUseVariant        ModeOfUse = 'Y'
)

func (m ModeOfUse) valid() bool {
	switch m {
	case ModeOfUseEncryptDecrypt, ModeOfUseMAC, ModeOfUseDecrypt, ModeOfUseEncrypt,
		ModeOfUseMACGenerate, ModeOfUseAny, ModeOfUseSignature, ModeOfUseMACVerify,
		ModeOfUseDerive, ModeOfUseVariant:
		return true
	default:
		return false
	}
}

// Exportability is the single-character exportability field (header byte 11).
type Exportability byte

const (
	ExportabilityTrusted   Exportability = 'E'
	ExportabilityNone      Exportability = 'N'
	ExportabilitySensitive Exportability = 'S'
)

func (e Exportability) valid() bool {
	switch e {
	case ExportabilityTrusted, ExportabilityNone, ExportabilitySensitive:
		return true
	default:
		return false
	}
}

// KeyUsage is the 16-bit value composed from the two ASCII header
// bytes at offset 5-6 (spec.md §3.2). All 24 values listed in spec.md
// §6.3 are enumerated by name here; any other two-character usage is
// rejected by KeyUsage.valid.
type KeyUsage uint16

const (
	KeyUsageBDK            KeyUsage = 0x4230 // B0
	KeyUsageDUKPTIPEK      KeyUsage = 0x4231 // B1
	KeyUsageCVK            KeyUsage = 0x4330 // C0
	KeyUsageDataGeneric    KeyUsage = 0x4430 // D0
	KeyUsageEMVMKAC        KeyUsage = 0x4530 // E0
	KeyUsageEMVMKSMC       KeyUsage = 0x4531 // E1
	KeyUsageEMVMKSMI       KeyUsage = 0x4532 // E2
	KeyUsageEMVMKDAC       KeyUsage = 0x4533 // E3
	KeyUsageEMVMKDN        KeyUsage = 0x4534 // E4
	KeyUsageEMVCP          KeyUsage = 0x4535 // E5
	KeyUsageEMVOther       KeyUsage = 0x4536 // E6
	KeyUsageIV             KeyUsage = 0x4930 // I0
	KeyUsageKEK            KeyUsage = 0x4B30 // K0
	KeyUsageISO16609MAC1   KeyUsage = 0x4D30 // M0
	KeyUsageISO97971MAC1   KeyUsage = 0x4D31 // M1
	KeyUsageISO97971MAC2   KeyUsage = 0x4D32 // M2
	KeyUsageISO97971MAC3   KeyUsage = 0x4D33 // M3, Retail MAC
	KeyUsageISO97971MAC4   KeyUsage = 0x4D34 // M4
	KeyUsageISO97971MAC5   KeyUsage = 0x4D35 // M5, CMAC
	KeyUsageISO97971MAC6   KeyUsage = 0x4D36 // M6
	KeyUsagePINGeneric     KeyUsage = 0x5030 // P0
	KeyUsagePVGeneric      KeyUsage = 0x5630 // V0
	KeyUsagePVIBM3624      KeyUsage = 0x5631 // V1
	KeyUsagePVVisa         KeyUsage = 0x5632 // V2
)

var knownKeyUsages = map[KeyUsage]struct{}{
	KeyUsageBDK: {}, KeyUsageDUKPTIPEK: {}, KeyUsageCVK: {}, KeyUsageDataGeneric: {},
	KeyUsageEMVMKAC: {}, KeyUsageEMVMKSMC: {}, KeyUsageEMVMKSMI: {}, KeyUsageEMVMKDAC: {},
	KeyUsageEMVMKDN: {}, KeyUsageEMVCP: {}, KeyUsageEMVOther: {}, KeyUsageIV: {},
	KeyUsageKEK: {}, KeyUsageISO16609MAC1: {}, KeyUsageISO97971MAC1: {}, KeyUsageISO97971MAC2: {},
	KeyUsageISO97971MAC3: {}, KeyUsageISO97971MAC4: {}, KeyUsageISO97971MAC5: {}, KeyUsageISO97971MAC6: {},
	KeyUsagePINGeneric: {}, KeyUsagePVGeneric: {}, KeyUsagePVIBM3624: {}, KeyUsagePVVisa: {},
}

func (u KeyUsage) valid() bool {
	_, ok := knownKeyUsages[u]

	return ok
}

// OptBlockID is the 16-bit identifier of an optional header block.
type OptBlockID uint16

const (
	OptBlockKS OptBlockID = 0x4B53 // Key Set Identifier
	OptBlockKV OptBlockID = 0x4B56 // Key Block Values
	OptBlockPB OptBlockID = 0x5042 // Padding Block
)
