package mcpserver

// PostFormatContract describes the canonical Markdown post format that
// LLM consumers should follow when creating or updating posts.
const PostFormatContract = `# Othala Post Format Contract

Every Markdown post stored in Othala MUST follow this structure.

## Structure

` + "```" + `markdown
---
title: Human-readable title        # REQUIRED – used everywhere the post is listed
date: 2025-01-15                    # REQUIRED – publication date, ISO-8601 date or datetime
draft: true                         # OPTIONAL – drafts are hidden from the public site in production
tags:                               # OPTIONAL – YAML list; groups posts in the tag index
  - tag-one
  - tag-two
category: essays                    # OPTIONAL – single value; groups posts in the category index
---

Body text in standard Markdown.
` + "```" + `

## Rules

1. **YAML frontmatter is mandatory.** The ` + "```" + `---` + "```" + ` fences must be the first
   thing in the file (no leading blank lines).
2. **` + "`" + `title` + "`" + ` field is required.** It is the primary display name everywhere.
3. **` + "`" + `date` + "`" + ` field is required.** Undated documents never appear in any view.
4. **` + "`" + `draft: true` + "`" + ` hides a post** from the public chronology, archive, tag and
   category indexes while the site runs in production. Omit the field (or set
   ` + "`" + `false` + "`" + `) to publish.
5. **Tags and categories keep their written casing** in display, but posts are
   grouped by the slugified form, so ` + "`" + `DevOps` + "`" + ` and ` + "`" + `devops` + "`" + ` land in the same group.
6. **File paths** end with ` + "`" + `.md` + "`" + ` and use forward slashes. The path (minus the
   extension) becomes the post's URL slug unless an explicit ` + "`" + `id` + "`" + ` is set.
7. **Encoding** is UTF-8 with a trailing newline.
8. **No HTML** unless absolutely necessary; prefer Markdown equivalents.

## Assets & Images

- Upload assets via the ` + "`" + `upload_asset` + "`" + ` tool. It returns a ` + "`" + `markdownImage` + "`" + ` field ready to paste into the post body.
- Assets are stored in the shared ` + "`" + `media/` + "`" + ` directory (flat, no sub-folders).
- Reference in posts using the absolute path: ` + "`" + `![description](/media/filename.png)` + "`" + `
- Supported formats: png, jpg, jpeg, gif, webp, svg, pdf.
- Do **not** use relative paths like ` + "`" + `./media/...` + "`" + ` — always use ` + "`" + `/media/filename` + "`" + `.

## Example

` + "```" + `markdown
---
title: Winter garden notes
date: 2025-01-20
tags:
  - gardening
  - winter
category: field-notes
---

# Winter garden notes

The cold frame held up through the first frost.

![Cold frame](/media/cold-frame-2025-01.jpg)

Next up: starting the tomato seeds indoors.
` + "```" + `
`
