// Package profile keeps the user's profile in a local key-value store.
//
// The profile is a JSON object (name, email, avatar, provider) stored under
// ProfileKey. Store is the only code that reads or writes that key:
//   - Load never fails. Absent, unreadable or corrupt data means
//     "no profile".
//   - Save and Signup apply the defaulting rules (placeholder name,
//     provider tag) and then overwrite the whole value in one write.
//   - Clear removes the key (sign-out).
//
// DisplayName is a presentation helper and does not touch storage.
package profile
