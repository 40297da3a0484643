package email

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const (
	SubjectNewPassword = "website: New password"
	SubjectNoAccount   = "website: No Account"
)

var subjects = func() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	set := func(tag language.Tag, key, msg string) {
		if err := b.SetString(tag, key, msg); err != nil {
			panic(err)
		}
	}
	set(language.English, SubjectNewPassword, SubjectNewPassword)
	set(language.English, SubjectNoAccount, SubjectNoAccount)
	set(language.Swedish, SubjectNewPassword, "website: Nytt lösenord")
	set(language.Swedish, SubjectNoAccount, "website: Inget konto")
	return b
}()

var subjectMatcher = language.NewMatcher([]language.Tag{language.English, language.Swedish})

// Subject переводит тему письма; неизвестный язык дает английский текст.
func Subject(lang, key string) string {
	tag, _ := language.MatchStrings(subjectMatcher, lang)
	base, _ := tag.Base()
	return message.NewPrinter(language.Make(base.String()), message.Catalog(subjects)).Sprintf(key)
}
