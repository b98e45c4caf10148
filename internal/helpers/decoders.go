package helpers

import (
	// форматы, которые принимает LoadImage
	_ "image/jpeg"
	_ "image/png"
)
