package questiongen

import "errors"

var errNoRemote = errors.New("no LLM provider configured (set GEMINI_API_KEY)")
