package model

import "biblecal/internal/config"

// Book is a localized book name pair.
type Book struct {
	Short string
	Full  string
}

// canonicalBooks lists the book ids in canonical order. Ids are the English
// names used in the plan CSV files.
var canonicalBooks = []string{
	"Genesis",
	"Exodus",
	"Leviticus",
	"Numbers",
	"Deuteronomy",
	"Joshua",
	"Judges",
	"Ruth",
	"1 Samuel",
	"2 Samuel",
	"1 Kings",
	"2 Kings",
	"1 Chronicles",
	"2 Chronicles",
	"Ezra",
	"Nehemiah",
	"Esther",
	"Job",
	"Psalms",
	"Proverbs",
	"Ecclesiastes",
	"Song of Solomon",
	"Isaiah",
	"Jeremiah",
	"Lamentations",
	"Ezekiel",
	"Daniel",
	"Hosea",
	"Joel",
	"Amos",
	"Obadiah",
	"Jonah",
	"Micah",
	"Nahum",
	"Habakkuk",
	"Zephaniah",
	"Haggai",
	"Zechariah",
	"Malachi",
	"Matthew",
	"Mark",
	"Luke",
	"John",
	"Acts",
	"Romans",
	"1 Corinthians",
	"2 Corinthians",
	"Galatians",
	"Ephesians",
	"Philippians",
	"Colossians",
	"1 Thessalonians",
	"2 Thessalonians",
	"1 Timothy",
	"2 Timothy",
	"Titus",
	"Philemon",
	"Hebrews",
	"James",
	"1 Peter",
	"2 Peter",
	"1 John",
	"2 John",
	"3 John",
	"Jude",
	"Revelation",
}

var books = map[config.Language]map[string]Book{
	config.LanguageEnglish: {
		"Genesis":         {"Gen", "Genesis"},
		"Exodus":          {"Ex", "Exodus"},
		"Leviticus":       {"Lev", "Leviticus"},
		"Numbers":         {"Num", "Numbers"},
		"Deuteronomy":     {"Deut", "Deuteronomy"},
		"Joshua":          {"Josh", "Joshua"},
		"Judges":          {"Judg", "Judges"},
		"Ruth":            {"Ruth", "Ruth"},
		"1 Samuel":        {"1 Sam", "1 Samuel"},
		"2 Samuel":        {"2 Sam", "2 Samuel"},
		"1 Kings":         {"1 Ki", "1 Kings"},
		"2 Kings":         {"2 Ki", "2 Kings"},
		"1 Chronicles":    {"1 Chr", "1 Chronicles"},
		"2 Chronicles":    {"2 Chr", "2 Chronicles"},
		"Ezra":            {"Ezra", "Ezra"},
		"Nehemiah":        {"Neh", "Nehemiah"},
		"Esther":          {"Est", "Esther"},
		"Job":             {"Job", "Job"},
		"Psalms":          {"Ps", "Psalms"},
		"Proverbs":        {"Prov", "Proverbs"},
		"Ecclesiastes":    {"Eccles", "Ecclesiastes"},
		"Song of Solomon": {"Song", "Song of Solomon"},
		"Isaiah":          {"Isa", "Isaiah"},
		"Jeremiah":        {"Jer", "Jeremiah"},
		"Lamentations":    {"Lam", "Lamentations"},
		"Ezekiel":         {"Ezek", "Ezekiel"},
		"Daniel":          {"Dan", "Daniel"},
		"Hosea":           {"Hosea", "Hosea"},
		"Joel":            {"Joel", "Joel"},
		"Amos":            {"Amos", "Amos"},
		"Obadiah":         {"Obad", "Obadiah"},
		"Jonah":           {"Jonah", "Jonah"},
		"Micah":           {"Micah", "Micah"},
		"Nahum":           {"Nahum", "Nahum"},
		"Habakkuk":        {"Hab", "Habakkuk"},
		"Zephaniah":       {"Zeph", "Zephaniah"},
		"Haggai":          {"Hag", "Haggai"},
		"Zechariah":       {"Zech", "Zechariah"},
		"Malachi":         {"Mal", "Malachi"},
		"Matthew":         {"Matt", "Matthew"},
		"Mark":            {"Mark", "Mark"},
		"Luke":            {"Lu", "Luke"},
		"John":            {"John", "John"},
		"Acts":            {"Acts", "Acts"},
		"Romans":          {"Rom", "Romans"},
		"1 Corinthians":   {"1 Cor", "1 Corinthians"},
		"2 Corinthians":   {"2 Cor", "2 Corinthians"},
		"Galatians":       {"Gal", "Galatians"},
		"Ephesians":       {"Eph", "Ephesians"},
		"Philippians":     {"Phil", "Philippians"},
		"Colossians":      {"Col", "Colossians"},
		"1 Thessalonians": {"1 Thess", "1 Thessalonians"},
		"2 Thessalonians": {"2 Thess", "2 Thessalonians"},
		"1 Timothy":       {"1 Tim", "1 Timothy"},
		"2 Timothy":       {"2 Tim", "2 Timothy"},
		"Titus":           {"Titus", "Titus"},
		"Philemon":        {"Philem", "Philemon"},
		"Hebrews":         {"Heb", "Hebrews"},
		"James":           {"James", "James"},
		"1 Peter":         {"1 Peter", "1 Peter"},
		"2 Peter":         {"2 Peter", "2 Peter"},
		"1 John":          {"1 John", "1 John"},
		"2 John":          {"2 John", "2 John"},
		"3 John":          {"3 John", "3 John"},
		"Jude":            {"Jude", "Jude"},
		"Revelation":      {"Rev", "Revelation"},
	},
	config.LanguageKorean: {
		"Genesis":         {"창", "창세기"},
		"Exodus":          {"출", "출애굽기"},
		"Leviticus":       {"레", "레위기"},
		"Numbers":         {"민", "민수기"},
		"Deuteronomy":     {"신", "신명기"},
		"Joshua":          {"수", "여호수아"},
		"Judges":          {"삿", "사사기"},
		"Ruth":            {"룻", "룻기"},
		"1 Samuel":        {"삼상", "사무엘상"},
		"2 Samuel":        {"삼하", "사무엘하"},
		"1 Kings":         {"왕상", "열왕기상"},
		"2 Kings":         {"왕하", "열왕기하"},
		"1 Chronicles":    {"대상", "역대상"},
		"2 Chronicles":    {"대하", "역대하"},
		"Ezra":            {"스", "에스라"},
		"Nehemiah":        {"느", "느헤미야"},
		"Esther":          {"에", "에스더"},
		"Job":             {"욥", "욥기"},
		"Psalms":          {"시", "시편"},
		"Proverbs":        {"잠", "잠언"},
		"Ecclesiastes":    {"전", "전도서"},
		"Song of Solomon": {"아", "아가"},
		"Isaiah":          {"사", "이사야"},
		"Jeremiah":        {"렘", "예레미야"},
		"Lamentations":    {"애", "예레미야애가"},
		"Ezekiel":         {"겔", "에스겔"},
		"Daniel":          {"단", "다니엘"},
		"Hosea":           {"호", "호세아"},
		"Joel":            {"욜", "요엘"},
		"Amos":            {"암", "아모스"},
		"Obadiah":         {"옵", "오바댜"},
		"Jonah":           {"욘", "요나"},
		"Micah":           {"미", "미가"},
		"Nahum":           {"나", "나훔"},
		"Habakkuk":        {"합", "하박국"},
		"Zephaniah":       {"습", "스바냐"},
		"Haggai":          {"학", "학개"},
		"Zechariah":       {"슥", "스가랴"},
		"Malachi":         {"말", "말라기"},
		"Matthew":         {"마", "마태복음"},
		"Mark":            {"막", "마가복음"},
		"Luke":            {"눅", "누가복음"},
		"John":            {"요", "요한복음"},
		"Acts":            {"행", "사도행전"},
		"Romans":          {"롬", "로마서"},
		"1 Corinthians":   {"고전", "고린도전서"},
		"2 Corinthians":   {"고후", "고린도후서"},
		"Galatians":       {"갈", "갈라디아서"},
		"Ephesians":       {"엡", "에베소서"},
		"Philippians":     {"빌", "빌립보서"},
		"Colossians":      {"골", "골로새서"},
		"1 Thessalonians": {"살전", "데살로니가전서"},
		"2 Thessalonians": {"살후", "데살로니가후서"},
		"1 Timothy":       {"딤전", "디모데전서"},
		"2 Timothy":       {"딤후", "디모데후서"},
		"Titus":           {"디", "디도서"},
		"Philemon":        {"몬", "빌레몬서"},
		"Hebrews":         {"히", "히브리서"},
		"James":           {"약", "야고보서"},
		"1 Peter":         {"벧전", "베드로전서"},
		"2 Peter":         {"벧후", "베드로후서"},
		"1 John":          {"요일", "요한일서"},
		"2 John":          {"요이", "요한이서"},
		"3 John":          {"요삼", "요한삼서"},
		"Jude":            {"유", "유다서"},
		"Revelation":      {"계", "요한계시록"},
	},
}
