package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// PlayerList renders the roster rows. The page script replaces it on every
// updatePlayers broadcast.
func PlayerList(items []PlayerListItem) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(items) == 0 {
			_, err := io.WriteString(w, `<li class="empty">Nobody has joined yet.</li>`)
			return err
		}
		for _, item := range items {
			class := "player"
			if item.IsTurn {
				class += " turn"
			}
			if _, err := io.WriteString(w, `<li class="`+class+`">`); err != nil {
				return err
			}
			if err := writeEscaped(w, item.Name); err != nil {
				return err
			}
			line := ` <span class="life">` + itoa(item.Life) + ` lives</span>` +
				` <span class="record">` + itoa(item.Wins) + `W / ` + itoa(item.Losses) + `L</span></li>`
			if _, err := io.WriteString(w, line); err != nil {
				return err
			}
		}
		return nil
	})
}

func Home(phase string, items []PlayerListItem) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Sixteen</title>
  </head>
  <body>
    <main class="shell">
      <h1>Sixteen</h1>
      <p id="phase">`); err != nil {
			return err
		}
		if err := writeEscaped(w, phase); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</p>
      <form id="joinForm"><input name="name" placeholder="Display name" required/><button>Join</button></form>
      <div class="actions">
        <button data-event="determineLife">Roll lives</button>
        <button data-event="rollDice">Roll</button>
        <button data-event="sacrificeLife">Sacrifice a life</button>
        <button data-event="newRound">New round</button>
      </div>
      <p id="roll"></p>
      <ul id="playerList">`); err != nil {
			return err
		}
		if err := PlayerList(items).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</ul>
      <ol id="log"></ol>
    </main>
    <script>
      const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
      const send = (event, extra) => ws.send(JSON.stringify(Object.assign({ event }, extra || {})));
      const text = (value) => document.createTextNode(String(value));
      let stats = {};
      const renderPlayers = (players) => {
        const list = document.getElementById("playerList");
        list.replaceChildren();
        for (const p of players) {
          const li = document.createElement("li");
          const record = stats[p.name] || { wins: 0, losses: 0 };
          li.className = p.isTurn ? "player turn" : "player";
          li.appendChild(text(p.name + " " + p.life + " lives " + record.wins + "W / " + record.losses + "L"));
          list.appendChild(li);
        }
      };
      const addLog = (line) => {
        const li = document.createElement("li");
        li.appendChild(text(line));
        document.getElementById("log").prepend(li);
      };
      ws.onmessage = (msg) => {
        const { event, data } = JSON.parse(msg.data);
        switch (event) {
          case "updatePlayers": renderPlayers(data || []); break;
          case "updateGameStats": stats = data || {}; break;
          case "logMessage": addLog(data); break;
          case "receiveMessage": addLog("chat: " + data); break;
          case "rollResult":
            document.getElementById("roll").textContent =
              data.player + " rolled " + data.roll + " (total " + data.totalValue + ", risk " + data.riskToLose + ")";
            break;
          case "gameOver": addLog(data + " wins!"); break;
        }
      };
      document.getElementById("joinForm").addEventListener("submit", (e) => {
        e.preventDefault();
        send("join", { name: e.target.elements.name.value });
      });
      document.querySelectorAll("[data-event]").forEach((btn) =>
        btn.addEventListener("click", () => send(btn.dataset.event)));
    </script>
  </body>
</html>`)
		return err
	})
}
