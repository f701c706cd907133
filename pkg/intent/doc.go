// Package intent resolves short UI requests such as "primary button labeled
// Submit" or "form with email and submit button" into catalog intents.
//
// Resolution is a closed, deterministic match against a phrase table built
// from the registry: component keywords, tags, preset keywords, variant name
// parts and modifier keywords, with synonyms from the catalog vocabulary.
// Lead words ("labeled", "title", "placeholder", ...) and quoted phrases fill
// slots; containers absorb the fields and buttons that follow them.
package intent
