package clause

func getTriggers() []string {
	return []string{
		"que",
		"cuando",
		"si",
		"aunque",
		"ojalá",
		"quizá",
		"quizás",
		"tal vez",
		"para que",
		"sin que",
		"hasta que",
		"antes de que",
		"después de que",
		"a menos que",
		"en caso de que",
		"con tal de que",
		"a fin de que",
		"siempre que",
		"mientras",
		"donde",
		"como",
	}
}

func isBackwardStop(r rune) bool {
	return r == '.' || r == '!' || r == '?' || r == '…'
}

func isForwardStop(r rune) bool {
	return r == '.' || r == '!' || r == '?' || r == ';' || r == '…'
}
