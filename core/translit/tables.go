package translit

// greekToCoptic maps lowercase Greek letters and the two combining marks that
// carry phonological content to their Coptic counterparts.
var greekToCoptic = map[rune]rune{
	'α': 'ⲁ',
	'β': 'ⲃ',
	'γ': 'ⲅ',
	'δ': 'ⲇ',
	'ε': 'ⲉ',
	'ζ': 'ⲍ',
	'η': 'ⲏ',
	'θ': 'ⲑ',
	'ϑ': 'ⲑ',
	'ι': 'ⲓ',
	'κ': 'ⲕ',
	'λ': 'ⲗ',
	'μ': 'ⲙ',
	'ν': 'ⲛ',
	'ξ': 'ⲝ',
	'ο': 'ⲟ',
	'π': 'ⲡ',
	'ρ': 'ⲣ',
	'σ': 'ⲥ',
	'ς': 'ⲥ',
	'τ': 'ⲧ',
	'υ': 'ⲩ',
	'φ': 'ⲫ',
	'χ': 'ⲭ',
	'ψ': 'ⲯ',
	'ω': 'ⲱ',
	'ϗ': 'ⳤ',

	RoughBreathing: Aspirate,
	IotaSubscript:  'ⲓ',
}

// vowels are the Coptic vowel letters.
var vowels = map[rune]bool{
	'ⲁ': true, 'ⲉ': true, 'ⲏ': true, 'ⲓ': true,
	'ⲟ': true, 'ⲱ': true, 'ⲩ': true,
}

// consonants are the Coptic consonant letters, including the Demotic-derived
// letters that never appear in transliterated Greek.
var consonants = map[rune]bool{
	'ⲡ': true, 'ⲧ': true, 'ⲕ': true, 'ⲃ': true, 'ⲇ': true, 'ⲅ': true,
	'ⲫ': true, 'ⲑ': true, 'ⲭ': true, 'ϩ': true, 'ⲥ': true, 'ϣ': true,
	'ϥ': true, 'ϫ': true, 'ϭ': true, 'ⲗ': true, 'ⲣ': true, 'ⳉ': true,
	'ϧ': true, 'ⲛ': true, 'ⲙ': true, 'ⲍ': true, 'ⲝ': true, 'ⲯ': true,
}
