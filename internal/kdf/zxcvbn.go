/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

package kdf

import (
	zxcvbn "github.com/nbutton23/zxcvbn-go"
)

// crackScenario selects which attacker model the strength gate
// estimates against. Argon2.Hash gates against an online attacker
// throttled to roughly 10 guesses/second; Argon2.Key gates against a
// patient offline attacker running an estimated 10,000 guesses/second.
type crackScenario int

const (
	scenarioOnline crackScenario = iota
	scenarioOffline
)

// secondsPerYear is used to convert a crack-time estimate in seconds
// into whole years.
const secondsPerYear = 365 * 24 * 3600

// assertCrackResistance estimates how long it would take an attacker
// under the given scenario to guess password, and returns a
// *WeakPasswordError if the estimate falls short of minYears.
//
// zxcvbn-go reports CrackTime under a single assumed guess rate
// (online, throttled). The offline scenario is derived from the same
// guess count by rescaling to a faster assumed guess rate, mirroring
// how the reference zxcvbn library buckets crack-time estimates by
// attacker speed.
func assertCrackResistance(password string, minYears int, scenario crackScenario) error {
	if minYears <= 0 {
		return nil
	}
	result := zxcvbn.PasswordStrength(password, nil)
	seconds := result.CrackTime
	if scenario == scenarioOffline {
		// CrackTime assumes ~10 guesses/second; rescale to ~10,000/second.
		seconds = seconds * 10 / 1e4
	}
	years := int(seconds) / secondsPerYear
	if years < minYears {
		return newWeakPasswordError()
	}
	return nil
}
