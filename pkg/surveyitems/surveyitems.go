// Package surveyitems anket oluşturma formundan gelen düz alanları
// (q{N} soru metni, q{N}c{M} seçenek metni) sıralı soru/seçenek listesine çevirir.
package surveyitems

import "strconv"

// Form ızgarasının sınırları.
const (
	MaxQuestions = 6
	MaxChoices   = 6
	MinChoices   = 2
)

// Item normalize edilmiş bir soru ve seçenekleridir.
type Item struct {
	Question string
	Choices  []string
}

// QuestionKey N. sorunun form alanı adını döndürür (q3).
func QuestionKey(n int) string {
	return "q" + strconv.Itoa(n)
}

// ChoiceKey N. sorunun M. seçeneğinin form alanı adını döndürür (q3c2).
func ChoiceKey(n, m int) string {
	return QuestionKey(n) + "c" + strconv.Itoa(m)
}

// Fields Normalize işleminin tersidir: N. öğeyi q{N} ve q{N}c{M} alanlarına yazar.
func Fields(items ...Item) map[string]string {
	fields := make(map[string]string)
	for i, item := range items {
		fields[QuestionKey(i+1)] = item.Question
		for j, choice := range item.Choices {
			fields[ChoiceKey(i+1, j+1)] = choice
		}
	}
	return fields
}

// lookup boş değerleri yok sayar. Değer olduğu gibi döner; boşluklar korunur.
func lookup(fields map[string]string, key string) (string, bool) {
	v, ok := fields[key]
	return v, ok && v != ""
}

// Normalize formdaki geçerli soruları sırasıyla döndürür. Metni olmayan ya da
// MinChoices'tan az seçeneği kalan sorular tamamen atılır. Hiç hata döndürmez;
// geçerli soru yoksa boş liste döner.
func Normalize(fields map[string]string) []Item {
	items := make([]Item, 0, MaxQuestions)
	for n := 1; n <= MaxQuestions; n++ {
		question, ok := lookup(fields, QuestionKey(n))
		if !ok {
			continue
		}

		choices := make([]string, 0, MaxChoices)
		for m := 1; m <= MaxChoices; m++ {
			if choice, ok := lookup(fields, ChoiceKey(n, m)); ok {
				choices = append(choices, choice)
			}
		}
		if len(choices) < MinChoices {
			continue
		}

		items = append(items, Item{Question: question, Choices: choices})
	}
	return items
}

// Slot anket oluşturma formundaki bir soru satırıdır; view tarafında alanları üretmek
// ve hatalı gönderimde girilen değerleri geri doldurmak için kullanılır.
type Slot struct {
	Number  int
	Key     string
	Value   string
	Choices []ChoiceSlot
}

// ChoiceSlot bir seçenek kutusudur.
type ChoiceSlot struct {
	Number int
	Key    string
	Value  string
}

// Slots MaxQuestions x MaxChoices boyutundaki form ızgarasını fields değerleriyle doldurur.
// fields nil olabilir.
func Slots(fields map[string]string) []Slot {
	slots := make([]Slot, 0, MaxQuestions)
	for n := 1; n <= MaxQuestions; n++ {
		slot := Slot{Number: n, Key: QuestionKey(n), Value: fields[QuestionKey(n)]}
		for m := 1; m <= MaxChoices; m++ {
			key := ChoiceKey(n, m)
			slot.Choices = append(slot.Choices, ChoiceSlot{Number: m, Key: key, Value: fields[key]})
		}
		slots = append(slots, slot)
	}
	return slots
}
