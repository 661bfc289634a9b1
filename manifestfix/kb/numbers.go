package kb

import "regexp"

// WordToNumber maps spelled-out English numbers to their integer value.
// Compound numbers (e.g. "twenty-five") are handled by CompoundWordNumbers
// first; this table only needs the atoms.
var WordToNumber = map[string]int{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14, "fifteen": 15,
	"sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
	"hundred": 100, "thousand": 1000,
}

// CompoundWordNumbers maps multi-word or hyphenated number phrases to their
// integer value. Matched before WordToNumber so "twenty-five" does not get
// partially replaced as "20-5".
var CompoundWordNumbers = map[string]int{
	"twenty-one": 21, "twenty-two": 22, "twenty-three": 23, "twenty-four": 24,
	"twenty-five": 25, "twenty-six": 26, "twenty-seven": 27, "twenty-eight": 28,
	"twenty-nine": 29,
	"thirty-one": 31, "thirty-two": 32, "thirty-five": 35,
	"forty-five": 45, "fifty-five": 55,
	"sixty-four": 64,
	"one hundred": 100, "two hundred": 200, "three hundred": 300,
	"five hundred": 500,
	"one thousand": 1000, "two thousand": 2000,
}

// NumericPatterns are regexes on a key's name implying its scalar value
// should be an integer, used when the key is not explicitly listed in
// NumericFields.
var NumericPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)count$`),
	regexp.MustCompile(`(?i)limit$`),
	regexp.MustCompile(`(?i)size$`),
	regexp.MustCompile(`(?i)timeout$`),
	regexp.MustCompile(`(?i)delay$`),
	regexp.MustCompile(`(?i)period$`),
	regexp.MustCompile(`(?i)threshold$`),
	regexp.MustCompile(`(?i)replicas$`),
	regexp.MustCompile(`(?i)port$`),
	regexp.MustCompile(`(?i)seconds$`),
	regexp.MustCompile(`(?i)minutes$`),
	regexp.MustCompile(`(?i)millis$`),
	regexp.MustCompile(`(?i)capacity$`),
}

// BooleanStrings maps non-native boolean tokens (YAML 1.1 style and plain
// English) to the canonical true/false they should be rewritten as.
var BooleanStrings = map[string]bool{
	"yes": true, "on": true, "1": true,
	"no": false, "off": false, "0": false,
}
