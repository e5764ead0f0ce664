package catalog

const sherpaModelsURL = "https://github.com/k2-fsa/sherpa-onnx/releases/download/tts-models/"

// PiperVoices is the curated piper-tts voice table.
var PiperVoices = []Voice{
	// English - US
	{ID: "amy", Name: "Amy", Lang: "en_US", Gender: 'F', Quality: "medium", SizeMB: 60, SampleRate: 22050, HFPath: "en/en_US/amy/medium/en_US-amy-medium"},
	{ID: "lessac", Name: "Lessac", Lang: "en_US", Gender: 'F', Quality: "high", SizeMB: 120, SampleRate: 22050, HFPath: "en/en_US/lessac/high/en_US-lessac-high"},
	{ID: "ryan", Name: "Ryan", Lang: "en_US", Gender: 'M', Quality: "high", SizeMB: 120, SampleRate: 22050, HFPath: "en/en_US/ryan/high/en_US-ryan-high"},
	{ID: "joe", Name: "Joe", Lang: "en_US", Gender: 'M', Quality: "medium", SizeMB: 60, SampleRate: 22050, HFPath: "en/en_US/joe/medium/en_US-joe-medium"},
	// English - GB
	{ID: "alan", Name: "Alan", Lang: "en_GB", Gender: 'M', Quality: "medium", SizeMB: 45, SampleRate: 22050, HFPath: "en/en_GB/alan/medium/en_GB-alan-medium"},
	{ID: "alba", Name: "Alba", Lang: "en_GB", Gender: 'F', Quality: "medium", SizeMB: 45, SampleRate: 22050, HFPath: "en/en_GB/alba/medium/en_GB-alba-medium"},
	// German
	{ID: "thorsten", Name: "Thorsten", Lang: "de_DE", Gender: 'M', Quality: "high", SizeMB: 120, SampleRate: 22050, HFPath: "de/de_DE/thorsten/high/de_DE-thorsten-high"},
	// French
	{ID: "siwis", Name: "Siwis", Lang: "fr_FR", Gender: 'F', Quality: "medium", SizeMB: 60, SampleRate: 22050, HFPath: "fr/fr_FR/siwis/medium/fr_FR-siwis-medium"},
	// Chinese
	{ID: "huayan", Name: "Huayan", Lang: "zh_CN", Gender: 'F', Quality: "medium", SizeMB: 60, SampleRate: 22050, HFPath: "zh/zh_CN/huayan/medium/zh_CN-huayan-medium"},
	// Spanish
	{ID: "davefx", Name: "DaveFX", Lang: "es_ES", Gender: 'M', Quality: "medium", SizeMB: 60, SampleRate: 22050, HFPath: "es/es_ES/davefx/medium/es_ES-davefx-medium"},
	// Russian
	{ID: "irina", Name: "Irina", Lang: "ru_RU", Gender: 'F', Quality: "medium", SizeMB: 60, SampleRate: 22050, HFPath: "ru/ru_RU/irina/medium/ru_RU-irina-medium"},
	{ID: "ruslan", Name: "Ruslan", Lang: "ru_RU", Gender: 'M', Quality: "medium", SizeMB: 60, SampleRate: 22050, HFPath: "ru/ru_RU/ruslan/medium/ru_RU-ruslan-medium"},
}

// SherpaVoices is the sherpa-onnx voice table. Each entry unpacks into its
// own directory under the models directory.
var SherpaVoices = []Voice{
	{
		ID: "melo", Name: "Melo", Lang: "zh_en", Gender: 'F', Quality: "high", SizeMB: 163,
		SampleRate:  MeloSampleRate,
		ArchiveURL:  sherpaModelsURL + "vits-melo-tts-zh_en.tar.bz2",
		ModelDir:    "vits-melo-tts-zh_en",
		ModelFile:   "model.onnx",
		TokensFile:  "tokens.txt",
		LexiconFile: "lexicon.txt",
		DictDir:     "dict",
	},
	{
		ID: "kss", Name: "KSS", Lang: "ko_KR", Gender: 'F', Quality: "low", SizeMB: 63,
		SampleRate: 22050,
		ArchiveURL: sherpaModelsURL + "vits-mimic3-ko_KO-kss_low.tar.bz2",
		ModelDir:   "vits-mimic3-ko_KO-kss_low",
		ModelFile:  "ko_KO-kss_low.onnx",
		TokensFile: "tokens.txt",
		DataDir:    "espeak-ng-data",
	},
	sherpaPiper("amy", "Amy", "en_US", 'F', "medium", 64, "en_US-amy-medium"),
	sherpaPiper("lessac", "Lessac", "en_US", 'F', "medium", 64, "en_US-lessac-medium"),
	sherpaPiper("ryan", "Ryan", "en_US", 'M', "medium", 64, "en_US-ryan-medium"),
	sherpaPiper("alan", "Alan", "en_GB", 'M', "medium", 64, "en_GB-alan-medium"),
	sherpaPiper("thorsten", "Thorsten", "de_DE", 'M', "medium", 64, "de_DE-thorsten-medium"),
	sherpaPiper("siwis", "Siwis", "fr_FR", 'F', "medium", 64, "fr_FR-siwis-medium"),
	sherpaPiper("huayan", "Huayan", "zh_CN", 'F', "medium", 64, "zh_CN-huayan-medium"),
	sherpaPiper("davefx", "DaveFX", "es_ES", 'M', "medium", 64, "es_ES-davefx-medium"),
	sherpaPiper("irina", "Irina", "ru_RU", 'F', "medium", 64, "ru_RU-irina-medium"),
}

// sherpaPiper builds the entry for a piper model repackaged by sherpa-onnx.
func sherpaPiper(id, name, lang string, gender rune, quality string, sizeMB int, model string) Voice {
	dir := "vits-piper-" + model
	return Voice{
		ID:         id,
		Name:       name,
		Lang:       lang,
		Gender:     gender,
		Quality:    quality,
		SizeMB:     sizeMB,
		SampleRate: DefaultSampleRate,
		ArchiveURL: sherpaModelsURL + dir + ".tar.bz2",
		ModelDir:   dir,
		ModelFile:  model + ".onnx",
		TokensFile: "tokens.txt",
		DataDir:    "espeak-ng-data",
	}
}
