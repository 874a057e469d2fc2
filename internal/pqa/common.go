/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

// Package pqa adapts the CIRCL post-quantum KEM and signature schemes
// behind two narrow interfaces (KEM and DSS), mirroring the uniform
// algorithm-agnostic wrapper the reference toolkit puts in front of
// its compiled PQClean bindings.
package pqa

import (
	"fmt"
	"strings"

	"quantcrypt/internal/common"
)

// ParamSizes are the fixed public/secret key sizes of a PQ algorithm.
type ParamSizes struct {
	PkSize int
	SkSize int
}

// armorName derives the envelope's algorithm label from an algorithm
// name such as "ML-KEM-768": uppercase it and drop every separator
// (hyphen or underscore), producing "MLKEM768".
func armorName(algoName string) string {
	name := strings.ToUpper(algoName)
	name = strings.ReplaceAll(name, "-", "")
	name = strings.ReplaceAll(name, "_", "")
	return name
}

// armor renders keyBytes as a PEM-like envelope named after algoName,
// selecting the PUBLIC or SECRET key label by matching its length
// against sizes. max line length of the base64 body is 64 characters.
func armor(algoName string, sizes ParamSizes, keyBytes []byte) (string, error) {
	var keyType string
	switch len(keyBytes) {
	case sizes.SkSize:
		keyType = "SECRET"
	case sizes.PkSize:
		keyType = "PUBLIC"
	default:
		return "", newKeyArmorError("armor")
	}

	encoded := common.B64Encode(keyBytes)
	const lineLen = 64
	var lines []string
	for i := 0; i < len(encoded); i += lineLen {
		end := i + lineLen
		if end > len(encoded) {
			end = len(encoded)
		}
		lines = append(lines, encoded[i:end])
	}

	name := armorName(algoName)
	header := fmt.Sprintf("-----BEGIN %s %s KEY-----\n", name, keyType)
	footer := fmt.Sprintf("\n-----END %s %s KEY-----", name, keyType)
	return header + strings.Join(lines, "\n") + footer, nil
}

// dearmor is the inverse of armor: it parses the header/footer
// envelope lines, requires them to name the same algorithm and key
// type, requires that algorithm to be algoName, and decodes the
// base64 body between them, verifying the decoded length matches the
// key type named in the envelope.
func dearmor(armoredKey string, algoName string, sizes ParamSizes) ([]byte, error) {
	headerEnd := strings.Index(armoredKey, "\n")
	footerStart := strings.LastIndex(armoredKey, "\n")
	if headerEnd == -1 || footerStart == -1 || headerEnd >= footerStart {
		return nil, newKeyArmorError("dearmor")
	}

	header := strings.TrimSpace(armoredKey[:headerEnd])
	footer := strings.TrimSpace(armoredKey[footerStart+1:])
	headerName, headerType, ok := parseEnvelopeLine(header, "BEGIN")
	if !ok {
		return nil, newKeyArmorError("dearmor")
	}
	footerName, footerType, ok := parseEnvelopeLine(footer, "END")
	if !ok {
		return nil, newKeyArmorError("dearmor")
	}
	if headerName != footerName || headerType != footerType {
		return nil, newKeyArmorError("dearmor")
	}
	if headerName != armorName(algoName) {
		return nil, newKeyArmorError("dearmor")
	}

	body := strings.ReplaceAll(armoredKey[headerEnd+1:footerStart], "\n", "")
	keyBytes, err := common.B64Decode(body)
	if err != nil {
		return nil, newKeyArmorError("dearmor")
	}
	switch headerType {
	case "PUBLIC":
		if len(keyBytes) != sizes.PkSize {
			return nil, newKeyArmorError("dearmor")
		}
	case "SECRET":
		if len(keyBytes) != sizes.SkSize {
			return nil, newKeyArmorError("dearmor")
		}
	default:
		return nil, newKeyArmorError("dearmor")
	}
	return keyBytes, nil
}

// parseEnvelopeLine parses a "-----<tag> <NAME> <PUBLIC|SECRET> KEY-----"
// line, returning the algorithm name and key type.
func parseEnvelopeLine(line, tag string) (name, keyType string, ok bool) {
	prefix := "-----" + tag + " "
	suffix := " KEY-----"
	if !strings.HasPrefix(line, prefix) || !strings.HasSuffix(line, suffix) {
		return "", "", false
	}
	middle := line[len(prefix) : len(line)-len(suffix)]
	parts := strings.Fields(middle)
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}
