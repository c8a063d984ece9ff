package catalog

import "github.com/abhisek/boardprep/internal/quiz"

// sampleQuestions holds the pre-authored batches, keyed by exact chapter name.
var sampleQuestions = map[string][]quiz.Question{
	"Real Numbers (वास्तविक संख्याएँ)": {
		{
			ID:           "m1",
			Prompt:       "दो क्रमिक सम संख्याओं का HCF क्या होगा?",
			Options:      []string{"1", "2", "3", "4"},
			CorrectIndex: 1,
			Explanation:  "दो लगातार सम संख्याओं (जैसे 2, 4 या 10, 12) का महत्तम समापवर्तक (HCF) हमेशा 2 होता है।",
			Difficulty:   quiz.Beginner,
		},
		{
			ID:           "m2",
			Prompt:       "निम्न में से कौन अपरिमेय संख्या (Irrational Number) है?",
			Options:      []string{"√9", "√16", "√7", "√25"},
			CorrectIndex: 2,
			Explanation:  "√9=3, √16=4, √25=5 ये सभी परिमेय हैं, लेकिन √7 को p/q के रूप में नहीं लिखा जा सकता।",
			Difficulty:   quiz.Intermediate,
		},
	},
	"Chemical Reactions (रासायनिक अभिक्रियाएँ)": {
		{
			ID:           "s1",
			Prompt:       "लोहे को जिंक से लेपित करने की क्रिया को क्या कहते हैं?",
			Options:      []string{"संक्षारण", "गैल्वेनीकरण", "पानी चढ़ाना", "विद्युत अपघटन"},
			CorrectIndex: 1,
			Explanation:  "लोहे को जंग से बचाने के लिए उस पर जिंक की परत चढ़ाने की क्रिया को गैल्वेनीकरण (Galvanization) कहते हैं।",
			Difficulty:   quiz.Beginner,
		},
	},
	"History: Europe (यूरोप में राष्ट्रवाद)": {
		{
			ID:           "ss1",
			Prompt:       "इटली एवं जर्मनी वर्तमान में किस महाद्वीप के अंतर्गत आते हैं?",
			Options:      []string{"उत्तरी अमेरिका", "दक्षिणी अमेरिका", "यूरोप", "पश्चिमी एशिया"},
			CorrectIndex: 2,
			Explanation:  "इटली और जर्मनी दोनों यूरोप महाद्वीप के प्रमुख देश हैं।",
			Difficulty:   quiz.Beginner,
		},
	},
	"Shram Vibhajan (श्रम विभाजन और जाति प्रथा)": {
		{
			ID:           "h1",
			Prompt:       "श्रम विभाजन और जाति प्रथा के लेखक कौन हैं?",
			Options:      []string{"महात्मा गांधी", "डॉ. भीमराव अंबेडकर", "राममनोहर लोहिया", "जवाहरलाल नेहरू"},
			CorrectIndex: 1,
			Explanation:  "इस निबंध के लेखक आधुनिक मनु डॉ. भीमराव अंबेडकर हैं।",
			Difficulty:   quiz.Beginner,
		},
	},
}

// SampleBatch returns the pre-authored batch for the exact chapter name.
// The batch is returned verbatim; callers must not modify it.
func SampleBatch(chapter string) ([]quiz.Question, bool) {
	if chapter == "" {
		return nil, false
	}
	qs, ok := sampleQuestions[chapter]
	if !ok {
		return nil, false
	}
	return qs, true
}
