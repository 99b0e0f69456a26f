package web

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"
)

// indexPage is the single-page UI shell. static/app.js fills it in.
func indexPage(title string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>`+templ.EscapeString(title)+`</title>
<link rel="stylesheet" href="/static/app.css">
</head>
<body>
<main>
<h1>`+templ.EscapeString(title)+`</h1>
<section class="toolbar">
  <input id="search" type="search" placeholder="Search by name or email">
  <form id="import-form">
    <input id="import-file" type="file" name="file" accept=".xlsx,.csv">
    <button type="submit">Import</button>
  </form>
  <button id="delete-all" class="danger" type="button">Delete all</button>
</section>
<form id="add-form" class="add">
  <input name="name" placeholder="Name" required>
  <input name="email" type="email" placeholder="Email" required>
  <button type="submit">Add user</button>
</form>
<table id="users">
  <thead>
    <tr>
      <th data-sort="id">ID</th>
      <th data-sort="name">Name</th>
      <th data-sort="email">Email</th>
      <th></th>
    </tr>
  </thead>
  <tbody></tbody>
</table>
<p id="empty" hidden>No users found.</p>
<div id="toast" role="status" hidden></div>
<dialog id="confirm-delete-all">
  <h2>Are you absolutely sure?</h2>
  <p>This action cannot be undone. This will permanently delete all users.</p>
  <button id="confirm-cancel" type="button">Cancel</button>
  <button id="confirm-ok" class="danger" type="button">Delete all</button>
</dialog>
</main>
<script src="/static/app.js"></script>
</body>
</html>
`)
		return err
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	templ.Handler(indexPage("User Management")).ServeHTTP(w, r)
}
